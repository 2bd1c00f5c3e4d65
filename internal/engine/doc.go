// Package engine implements the tick-based idea-generation engine.
//
// The engine owns a fixed fleet of agents ("bots"). Each call to Tick steps
// every agent once, in ascending agent id order, and collects the ideas they
// emit into a bounded history.
//
// ARCHITECTURE:
//
// Synchronous Step Function:
// Tick, Status and Recent run to completion without I/O or suspension.
// There is no internal locking; the engine assumes a single logical caller.
// Transports that share an Engine across goroutines must serialize access.
//
// Tick Flow:
// 1. Engine.Tick() reads the injected Clock once per event
// 2. Every Agent.Generate() runs in ascending agent id order
// 3. Per-agent batches are concatenated in that order
// 4. The batch is pushed into the history ring (oldest evicted past capacity)
// 5. total_events advances by the batch size, evicted events included
//
// CRITICAL PATTERNS:
//
// Fractional Carry:
// Agents emit floor(rate) ideas per tick plus one extra whenever the
// carried fractional remainder reaches 1. The long-run emission rate
// converges to rate with an error bounded by one idea, without randomness.
//
// Deterministic Content:
// Layer selection and summary category are pure functions of
// (agent id, sequence, layer). Only CreatedAt depends on the clock.
package engine
