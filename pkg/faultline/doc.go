// Package faultline provides a lightweight error-reporting client that
// delivers diagnostic events to a remote ingestion endpoint over the
// envelope protocol.
//
// A Client is built from a DSN string identifying the endpoint and the key
// used to authenticate against it. Each captured event flows through a
// pipeline: scope tags are merged in, the scope's processors run in order,
// the optional send filter gets the last word, and the surviving event is
// encoded into an envelope and handed to an asynchronous transport. Capture
// calls return before the network send happens.
//
// # Core Components
//
// The library is organized around these concepts:
//
//   - Event: The canonical diagnostic representation with level, message, tags, and extra context
//   - Scope: Ambient tags and an ordered processor chain applied at capture time
//   - Processor: A named transform that can mutate or veto an event (explicit Keep/Drop verdicts)
//   - Transport: Destination for encoded envelopes (HTTP, stderr, multi, noop)
//   - Sanitizer: Built-in processor that redacts secrets with fail-closed behavior
//
// # Quick Start
//
// Reporting to an ingestion endpoint:
//
//	client, err := faultline.NewClient(faultline.Options{
//	    DSN:         "https://publickey@errors.example.com/42",
//	    Environment: "production",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	scope := faultline.NewScope()
//	scope.SetTag("component", "billing")
//	scope.AddProcessor(faultline.NewDefaultSanitizer())
//
//	client.CaptureMessage(ctx, "invoice sync failed", scope)
//
// For panic capture in goroutines and handlers:
//
//	defer faultline.Recover(ctx, client)
//
// # Design Principles
//
//   - Capture never fails the caller: pipeline and delivery errors are logged and counted, not returned
//   - Explicit verdicts: processors return Keep or Drop, and the dropping processor is always identifiable
//   - Fail-closed sanitization: content that cannot be safely inspected is redacted, never passed through
//   - Best-effort delivery: no retries, no offline queue; Close drains within a bounded timeout and reports what it abandons
package faultline
