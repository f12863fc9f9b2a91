// Package repository implements the ledger store over GORM/Postgres.
package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents an account row.
type Account struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number       string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	Balance      decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0"`
	Currency     string          `gorm:"type:varchar(3);not null;default:'USD'"`
	PinHash      string          `gorm:"type:varchar(72);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Transactions []Transaction `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Transaction represents a row in the append-only transaction log. Rows are
// inserted once and never updated; sequence is a bigserial that fixes the
// log's insertion order.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Sequence    int64           `gorm:"autoIncrement;uniqueIndex"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null"`
	Type        string          `gorm:"type:varchar(16);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Balance     decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	Currency    string          `gorm:"type:varchar(3);not null"`
	Description string          `gorm:"type:varchar(255)"`
	TargetID    *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// Migrate creates or updates the ledger schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{}, &Transaction{})
}
