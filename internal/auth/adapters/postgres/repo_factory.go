package postgres

import (
	"lifebook/internal/auth/ports/repositories"
)

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool PgxPoolInterface
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// UserRepository возвращает репозиторий для работы с пользователями.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return NewUserRepository(f.pool)
}

// TokenRepository возвращает репозиторий для работы с токенами.
func (f *RepositoryFactory) TokenRepository() repositories.TokenRepository {
	return NewTokenRepository(f.pool)
}
