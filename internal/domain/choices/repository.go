package choices

import "context"

type Repository interface {
	// Upsert conserva CreatedAt si la decisión ya existía.
	Upsert(ctx context.Context, c Choice) (Choice, error)
	ListByUser(ctx context.Context, userID int64) ([]Choice, error)
	// ListDogChoiceRows ordena por fecha de decisión.
	ListDogChoiceRows(ctx context.Context) ([]ExportRow, error)
}
