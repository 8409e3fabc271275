// Package syncer implements per-account pull-sync: walking an account's
// chain forward by asking peers for the next block, handing each
// accepted block to the block processor, and reacting to the
// processor's outcome to either advance, retry, or drop that account's
// sync. It also fans out to related accounts a successfully appended
// block references — a send's destination, or a representative whose
// reward has matured — so that syncing one account's history pulls in
// whatever else the ledger needs to catch up.
package syncer
