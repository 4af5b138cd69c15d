package repository

import (
	"context"

	"souq/internal/domain/repository"
)

// StubRepositoryFactory hands back fixed repository mocks so a transactional
// usecase can be exercised without a database.
type StubRepositoryFactory struct {
	Users           repository.UserRepository
	Categories      repository.CategoryRepository
	StoreCategories repository.StoreCategoryRepository
	Requests        repository.RequestRepository
}

func (f *StubRepositoryFactory) UserRepo() repository.UserRepository { return f.Users }

func (f *StubRepositoryFactory) CategoryRepo() repository.CategoryRepository { return f.Categories }

func (f *StubRepositoryFactory) StoreCategoryRepo() repository.StoreCategoryRepository {
	return f.StoreCategories
}

func (f *StubRepositoryFactory) RequestRepo() repository.RequestRepository { return f.Requests }

// StubTransactionManager runs the transactional function directly against the
// stub factory. Commit and rollback are a pass-through of fn's error.
type StubTransactionManager struct {
	Factory *StubRepositoryFactory
}

func (m *StubTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}
