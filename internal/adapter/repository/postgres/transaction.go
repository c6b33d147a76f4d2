package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Twit-Snap/users-service/internal/pkg/apperror"
)

// TransactionManager implements port.Transaction interface using GORM.
// TransactionManager реализует интерфейс port.Transaction с использованием GORM.
//
// Blocking a user and writing its audit entry commit together through it.
// Через него блокировка пользователя и запись аудита фиксируются вместе.
type TransactionManager struct {
	db *gorm.DB // Database connection / Подключение к базе данных
}

// NewTransactionManager creates a new TransactionManager instance.
// NewTransactionManager создаёт новый экземпляр TransactionManager.
func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithTransaction executes a function within a transaction.
// WithTransaction выполняет функцию в рамках транзакции.
// Automatically commits on success or rolls back on error/panic.
// Автоматически фиксирует при успехе или откатывает при ошибке/панике.
//
// Example usage / Пример использования:
//
//	err := tm.WithTransaction(ctx, func(tx *gorm.DB) error {
//	    if err := userRepo.SetBlockedTx(ctx, tx, id, true); err != nil {
//	        return err
//	    }
//	    return auditRepo.CreateTx(ctx, tx, entry)
//	})
func (t *TransactionManager) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	defer observe("transaction", "-")()

	tx := t.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperror.Internal("failed to begin transaction", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return apperror.Internal("failed to rollback transaction", rbErr)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return apperror.Internal("failed to commit transaction", err)
	}
	return nil
}

// DB returns the underlying database connection.
// DB возвращает базовое подключение к базе данных.
func (t *TransactionManager) DB() *gorm.DB {
	return t.db
}
