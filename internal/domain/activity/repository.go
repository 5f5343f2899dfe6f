package activity

import "context"

// Register persists the consolidated activity table.
// Load returns an empty slice when nothing has been stored yet.
// Replace swaps the whole table in one step; readers never see a partial write.
type Register interface {
	Load(ctx context.Context) ([]Record, error)
	Replace(ctx context.Context, records []Record) error
}

// Querier is implemented by registers that can filter at the source. Query
// must return the same rows, in the same order, as Filter.Apply over Load.
type Querier interface {
	Query(ctx context.Context, filter Filter) ([]Record, error)
}
