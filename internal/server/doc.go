// Package server exposes the friendgraph engine over HTTP.
//
// Every route takes a JSON body and answers with a JSON object whose
// "result" field holds the same line the CLI would print, plus structured
// fields for programs:
//
//	POST /add_user       {"name": "alice"}
//	POST /remove_user    {"name": "alice"}
//	POST /add_friend     {"user1": "alice", "user2": "bob"}
//	POST /remove_friend  {"user1": "alice", "user2": "bob"}
//	POST /show_friends   {"name": "alice"}
//	POST /find_path      {"start": "alice", "end": "carol"}
//	POST /recommend      {"name": "alice"}
//	GET  /healthz
//	GET  /metrics
//
// Reported outcomes, including unknown users, are answered with 200.
// Malformed or incomplete requests get 400, store failures 503.
//
// The server registers Prometheus collectors as the engine's observability
// hooks; they are served on /metrics.
package server
