package repository

type Repository[T any] interface {
	FindAll() ([]T, error)
	Upsert(entity T) error
}
