// Package betlog keeps a personal ledger of sports bets. It is designed to be
// local-first: the whole ledger fits in a small file (or a local database)
// owned by the user, and every number it shows can be recomputed from the
// recorded bets.
//
// The core functionalities include:
//   - Recording wagers, either simple or combined (several legs whose odds
//     multiply), always starting in the pending status.
//   - Reconciling a running balance when a bet is settled as won or lost,
//     and reversing that effect when the bet is deleted or re-settled.
//   - Computing statistics (count, wins, losses, staked amount and net profit)
//     from the bets alone, independently of the stored balance.
//   - Encoding and decoding the ledger to and from a human readable JSONL
//     stream.
//
// A Ledger is a plain value owned by its caller. Persistence is wired through
// mutation hooks, see Book, so the reconciliation logic never touches storage.
package betlog
