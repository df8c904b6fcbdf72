/*
Package observability provides lifecycle hooks for monitoring solves.

Metrics exposes Prometheus collectors fed by domain.LifecycleHooks; LogHooks
writes the same events to a structured logger. Both can be combined with
LifecycleHooks.Merge.
*/
package observability
