// Package interaction implements the signed-interaction state machine.
//
// Every request takes a single pass:
//
//  1. Start: verify X-Signature-Ed25519 over X-Signature-Timestamp + raw body.
//     Any failure replies 401 {"error":"Unsigned request"}.
//  2. Authenticated: decode the same raw bytes into an Envelope. A body that
//     is not a JSON object of the expected shape replies 400.
//  3. Dispatched: branch on Envelope.Type.
//     - 1 (ping): 200 {"type":1}
//     - 2 (application command): pick content for the "category" option,
//     200 {"type":4,"data":{"content":"..."}}
//     - anything else, including a missing type: 400 {"error":"Bad request"}
//  4. Terminal: Reply.Render produces status, content type and body.
//
// A category that is not in the content table is not an error: the reply is
// drawn from every category combined.
package interaction
