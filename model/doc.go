// Package model defines the provider-agnostic abstraction for the external
// language model collaborator driving a run.
//
// Core goals:
//   - Keep the request/response shapes minimal and transport independent
//   - Normalize token usage counters across vendors (TokenUsage)
//   - Facilitate lightweight mocking for tests (MockModel, Func)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so the supervisor remains decoupled from vendor SDKs.
package model
