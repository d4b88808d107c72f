// Package main runs the interactive expense ledger console.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/splitpot/splitpot/internal/directory"
	"github.com/splitpot/splitpot/internal/domain"
	"github.com/splitpot/splitpot/internal/groupservice"
	"github.com/splitpot/splitpot/internal/ledgerservice"
	"github.com/splitpot/splitpot/internal/middleware"
	"github.com/splitpot/splitpot/internal/settlementservice"
	"github.com/splitpot/splitpot/internal/storage"
	"github.com/splitpot/splitpot/internal/userservice"
	"github.com/splitpot/splitpot/pkg/configpkg"
	"github.com/splitpot/splitpot/pkg/moneypkg"
)

type app struct {
	users       *userservice.Service
	groups      *groupservice.Service
	ledger      *ledgerservice.Service
	settlements *settlementservice.Service

	in  *bufio.Scanner
	ctx context.Context
}

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	repos, err := storage.Open(config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open storage backend")
	}
	defer repos.Close()

	groups := groupservice.New(repos.Groups, repos.Users)
	dir := directory.New(repos.Users, groups)

	a := &app{
		users:       userservice.New(repos.Users),
		groups:      groups,
		ledger:      ledgerservice.New(repos.Expenses, dir),
		settlements: settlementservice.New(repos.Expenses),
		in:          bufio.NewScanner(os.Stdin),
		ctx:         logger.WithContext(context.Background()),
	}

	a.run()
}

func (a *app) run() {
	for {
		fmt.Println("\nOptions:")
		fmt.Println("1. Register User")
		fmt.Println("2. Create Group")
		fmt.Println("3. Add Expense")
		fmt.Println("4. View Group Balances")
		fmt.Println("5. View Personal Balance")
		fmt.Println("6. Settle Balance")
		fmt.Println("7. Exit")

		switch a.prompt("Enter your choice: ") {
		case "1":
			a.registerUser()
		case "2":
			a.createGroup()
		case "3":
			a.addExpense()
		case "4":
			a.viewGroupBalances()
		case "5":
			a.viewPersonalBalance()
		case "6":
			a.settleBalance()
		case "7":
			fmt.Println("Exiting!")
			return
		default:
			fmt.Println("Invalid choice!")
		}
	}
}

func (a *app) prompt(label string) string {
	fmt.Print(label)

	if !a.in.Scan() {
		return "7"
	}

	return strings.TrimSpace(a.in.Text())
}

func (a *app) registerUser() {
	name := a.prompt("Enter your name: ")
	email := a.prompt("Enter your email: ")

	if _, err := a.users.Register(a.ctx, email, name); err != nil {
		if errors.Is(err, domain.ErrDuplicateUser) {
			fmt.Println("User already exists!")
			return
		}

		fmt.Println("Could not register user:", err)

		return
	}

	fmt.Printf("User %s registered successfully!\n", name)
}

func (a *app) createGroup() {
	groupName := a.prompt("Enter group name: ")
	members := strings.Split(a.prompt("Enter group members' emails (comma-separated): "), ",")

	if _, err := a.groups.Create(a.ctx, groupName, members); err != nil {
		if errors.Is(err, domain.ErrDuplicateGroup) {
			fmt.Println("Group already exists!")
			return
		}

		fmt.Println("Could not create group:", err)

		return
	}

	fmt.Printf("Group %s created successfully!\n", groupName)
}

func (a *app) addExpense() {
	arg := domain.CreateExpenseParams{
		GroupName:   a.prompt("Enter group name: "),
		ExpenseName: a.prompt("Enter expense name: "),
		Amount:      a.prompt("Enter amount: "),
		Payer:       a.prompt("Who paid? Enter email: "),
	}

	if strings.ToLower(a.prompt("Split equally? (yes/no): ")) == "yes" {
		arg.EqualSplit = true
	} else {
		members, err := a.groups.Members(a.ctx, arg.GroupName)
		if err != nil {
			fmt.Println("Group not found!")
			return
		}

		arg.CustomSplit = make(map[string]string, len(members))
		for _, member := range members {
			arg.CustomSplit[member] = a.prompt(fmt.Sprintf("Enter amount for %s: ", member))
		}
	}

	if _, err := a.ledger.RecordExpense(a.ctx, arg); err != nil {
		switch {
		case errors.Is(err, domain.ErrGroupNotFound):
			fmt.Println("Group not found!")
		case errors.Is(err, domain.ErrPayerNotMember):
			fmt.Println("Payer not in group!")
		case errors.Is(err, domain.ErrInvalidSplitInput):
			fmt.Println("Invalid input. Aborting.")
		case errors.Is(err, domain.ErrInvalidAmount):
			fmt.Println("Invalid amount!")
		default:
			fmt.Println("Could not add expense:", err)
		}

		return
	}

	fmt.Printf("Expense '%s' added successfully!\n", arg.ExpenseName)
}

func (a *app) viewGroupBalances() {
	groupName := a.prompt("Enter group name: ")

	balances, detail, err := a.ledger.GroupBalances(a.ctx, groupName)
	if err != nil {
		fmt.Println("Could not read balances:", err)
		return
	}

	if len(balances) == 0 {
		fmt.Println("No balances to display!")
		return
	}

	fmt.Println("\nBalances:")

	for _, member := range sortedKeys(balances) {
		balance := balances[member]
		if balance.IsZero() {
			continue
		}

		direction := "to Receive"
		if balance.IsPositive() {
			direction = "Owes"
		}

		fmt.Printf("%s: %s %s\n", member, direction, moneypkg.Format(balance.Abs()))
	}

	fmt.Println("\nWho owes whom:")

	for _, ower := range sortedDetailKeys(detail) {
		for _, owee := range sortedKeys(detail[ower]) {
			amount := detail[ower][owee]
			if amount.IsZero() {
				continue
			}

			fmt.Printf("%s owes %s: %s\n", ower, owee, moneypkg.Format(amount))
		}
	}
}

func (a *app) viewPersonalBalance() {
	userName := a.prompt("Enter your name to view your personal balance details: ")

	balance, err := a.ledger.PersonalBalance(a.ctx, userName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			fmt.Printf("User '%s' not found!\n", userName)
			return
		}

		fmt.Println("Could not read balance:", err)

		return
	}

	direction := "to Receive"
	if balance.Net.IsNegative() {
		direction = "Owe"
	}

	fmt.Printf("\nPersonal Balance Details for %s:\n", userName)
	fmt.Printf("Expenses you owe to others: %s\n", moneypkg.Format(balance.OwesToOthers))
	fmt.Printf("Expenses others owe to you: %s\n", moneypkg.Format(balance.OwedByOthers))
	fmt.Printf("Your net balance: %s %s\n", direction, moneypkg.Format(balance.Net.Abs()))
}

func (a *app) settleBalance() {
	payer := a.prompt("Enter your email: ")
	payee := a.prompt("Enter the email of the person you settled with: ")
	amount := a.prompt("Enter the amount settled: ")

	if _, err := a.settlements.Settle(a.ctx, payer, payee, amount); err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			fmt.Println("Invalid amount!")
			return
		}

		fmt.Println("Could not settle balance:", err)

		return
	}

	fmt.Printf("Balance of %s settled between %s and %s!\n", amount, payer, payee)
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func sortedDetailKeys(d domain.Detail) []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
