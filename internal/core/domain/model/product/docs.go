// Package product holds the Product aggregate of the inventory ledger.
//
// Stock is only ever changed through Reserve and Return; the out-of-stock
// state is derived from the counter and never stored on its own.
package product
