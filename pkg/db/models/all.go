package models

// All lists the persisted models in migration order.
func All() []any {
	return []any{&Item{}, &Log{}, &Note{}, &Reminder{}}
}
