package orders_test

import "github.com/jhoicas/lacteos-api/internal/domain/repository"

func memstoreAll() repository.OrderFilter {
	return repository.OrderFilter{Limit: 1000}
}
