// Command ledger-cli is an operator tool over the transaction engine. It is
// not a transport layer; it drives the same engine API an embedding service
// would.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/corebank/ledger/config"
	"github.com/corebank/ledger/infra"
	infrarepo "github.com/corebank/ledger/infra/repository"
	"github.com/corebank/ledger/pkg/domain/account"
	"github.com/corebank/ledger/pkg/money"
	"github.com/corebank/ledger/pkg/repository"
	"github.com/corebank/ledger/pkg/service/ledger"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

func usage() {
	fmt.Println("Usage: ledger-cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  migrate")
	fmt.Println("  create <user_id> <account_number>")
	fmt.Println("  deposit <account_id> <amount> [description]")
	fmt.Println("  withdraw <account_id> <amount> [description]")
	fmt.Println("  transfer <account_id> <target_number> <amount> [description]")
	fmt.Println("  balance <account_id>")
	fmt.Println("  history <account_id> [DEPOSIT|WITHDRAWAL|TRANSFER]")
	fmt.Println("  set-pin <account_id>")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:]); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cmd == "migrate" {
		if err := infrarepo.Migrate(db); err != nil {
			return err
		}
		color.Green("Schema up to date")
		return nil
	}

	svc := ledger.NewService(infrarepo.NewUoW(db), logger)

	switch cmd {
	case "create":
		if len(args) < 2 {
			usage()
			return fmt.Errorf("create needs <user_id> <account_number>")
		}
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		a, err := svc.CreateAccount(ctx, userID, args[1])
		if err != nil {
			return err
		}
		color.Green("Account created: id=%s number=%s balance=%s", a.ID, a.Number, a.Balance)
		fmt.Println("The account starts with the default PIN; run set-pin to replace it.")
		return nil

	case "deposit", "withdraw":
		if len(args) < 2 {
			usage()
			return fmt.Errorf("%s needs <account_id> <amount>", cmd)
		}
		accountID, amount, err := parseAccountAmount(args[0], args[1])
		if err != nil {
			return err
		}
		pin, err := readPIN()
		if err != nil {
			return err
		}
		description := strings.Join(args[2:], " ")
		var tx *account.Transaction
		if cmd == "deposit" {
			tx, err = svc.Deposit(ctx, accountID, amount, pin, description)
		} else {
			tx, err = svc.Withdraw(ctx, accountID, amount, pin, description)
		}
		if err != nil {
			return err
		}
		color.Green("%s of %s committed. New balance: %s", tx.Type, tx.Amount, tx.Balance)
		return nil

	case "transfer":
		if len(args) < 3 {
			usage()
			return fmt.Errorf("transfer needs <account_id> <target_number> <amount>")
		}
		accountID, amount, err := parseAccountAmount(args[0], args[2])
		if err != nil {
			return err
		}
		pin, err := readPIN()
		if err != nil {
			return err
		}
		description := strings.Join(args[3:], " ")
		tx, err := svc.Transfer(ctx, accountID, args[1], amount, pin, description)
		if err != nil {
			return err
		}
		color.Green("Transferred %s to %s. New balance: %s", tx.Amount, args[1], tx.Balance)
		return nil

	case "balance":
		if len(args) < 1 {
			usage()
			return fmt.Errorf("balance needs <account_id>")
		}
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		balance, err := svc.GetBalance(ctx, accountID)
		if err != nil {
			return err
		}
		fmt.Printf("Balance: %s\n", balance)
		return nil

	case "history":
		if len(args) < 1 {
			usage()
			return fmt.Errorf("history needs <account_id>")
		}
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		var filter repository.ListFilter
		if len(args) > 1 {
			txType := account.TransactionType(strings.ToUpper(args[1]))
			if !txType.IsValid() {
				return fmt.Errorf("unknown transaction type %q", args[1])
			}
			filter.Type = &txType
		}
		records, err := svc.History(ctx, accountID, filter)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No transactions")
			return nil
		}
		for _, tx := range records {
			line := fmt.Sprintf("%6d  %s  %-10s  %s  balance=%s",
				tx.Sequence, tx.CreatedAt.Format("2006-01-02 15:04:05"), tx.Type, tx.Amount, tx.Balance)
			if tx.TargetID != nil {
				line += fmt.Sprintf("  target=%s", tx.TargetID)
			}
			if tx.Description != "" {
				line += fmt.Sprintf("  %q", tx.Description)
			}
			fmt.Println(line)
		}
		return nil

	case "set-pin":
		if len(args) < 1 {
			usage()
			return fmt.Errorf("set-pin needs <account_id>")
		}
		accountID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid account id: %w", err)
		}
		fmt.Print("New PIN (4 digits): ")
		pin, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return err
		}
		if err := svc.UpdatePIN(ctx, accountID, string(pin)); err != nil {
			return err
		}
		color.Green("PIN updated")
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseAccountAmount(idArg, amountArg string) (uuid.UUID, money.Money, error) {
	accountID, err := uuid.Parse(idArg)
	if err != nil {
		return uuid.Nil, money.Money{}, fmt.Errorf("invalid account id: %w", err)
	}
	amount, err := money.NewFromString(amountArg, "")
	if err != nil {
		return uuid.Nil, money.Money{}, err
	}
	return accountID, amount, nil
}

func readPIN() (string, error) {
	fmt.Print("PIN: ")
	pin, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	return string(pin), err
}
