package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	FoodList(ctx context.Context, filter string) error
	FoodCreate(ctx context.Context) error
	FoodEdit(ctx context.Context, key string) error
	FoodDelete(ctx context.Context, key string) error
	Settings(ctx context.Context) error
	WeightList(ctx context.Context, days int) error
	WeightCreate(ctx context.Context) error
	WeightEdit(ctx context.Context, key string) error
	WeightDelete(ctx context.Context, key string) error
}

const helpText = `Available commands:
  food [filter]         list food
  food-create           add food
  food-edit <key>       edit food
  food-delete <key>     delete food
  settings              edit user settings
  weight [days]         list weight entries (default 365 days)
  weight-create         record today's weight
  weight-edit <ts>      edit weight entry
  weight-delete <ts>    delete weight entry
  exit | quit           leave the program`

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF or when the user types "exit" or "quit". prompt is
// printed before every command unless empty.
//
// Errors returned by command handlers are ignored here; handlers report them
// to the user themselves.
func runREPL(ctx context.Context, a execIface, prompt string, reader *bufio.Reader) {
	for {
		if prompt != "" {
			printlnFn(prompt)
		}
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "food":
			_ = a.FoodList(ctx, strings.Join(args, " "))

		case "food-create":
			_ = a.FoodCreate(ctx)

		case "food-edit":
			if key, ok := requireArg(cmd, "<key>", args); ok {
				_ = a.FoodEdit(ctx, key)
			}

		case "food-delete":
			if key, ok := requireArg(cmd, "<key>", args); ok {
				_ = a.FoodDelete(ctx, key)
			}

		case "settings":
			_ = a.Settings(ctx)

		case "weight":
			days := 0
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					printlnFn("Usage: weight [days]")
					continue
				}
				days = n
			}
			_ = a.WeightList(ctx, days)

		case "weight-create":
			_ = a.WeightCreate(ctx)

		case "weight-edit":
			if key, ok := requireArg(cmd, "<ts>", args); ok {
				_ = a.WeightEdit(ctx, key)
			}

		case "weight-delete":
			if key, ok := requireArg(cmd, "<ts>", args); ok {
				_ = a.WeightDelete(ctx, key)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireArg(cmd, name string, args []string) (string, bool) {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s %s", cmd, name))
		return "", false
	}
	return args[0], true
}
