// Package pipeline coordinates the two stages of a conversion job. Both
// stages are launched before either is awaited, because each can block on
// conduit I/O waiting for the other. The coordinator then reaps whichever
// stage finishes first and, on the first failure, asks the surviving sibling
// to terminate so it cannot sit blocked on the conduit forever. It always
// collects both terminal statuses before returning.
package pipeline
