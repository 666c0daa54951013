// Package ingest is the HTTP client for the novel ingestion endpoint.
//
// A Client posts one Request per Submit call and classifies the outcome:
//
//   - a Response with a non-empty NovelID on success;
//   - *TransportError when no response arrived (connection, timeout, cancel);
//   - *BackendError when a response arrived but did not report success.
//
// The client never retries. Each call carries a fresh X-Request-ID so that a
// submission can be matched against backend logs.
package ingest
