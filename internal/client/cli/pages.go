package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/myhealth/internal/client/editsession"
	"github.com/dmitrijs2005/myhealth/internal/client/kinds"
	"github.com/dmitrijs2005/myhealth/internal/client/models"
	"github.com/dmitrijs2005/myhealth/internal/common"
)

// runEditPage drives one edit session from the terminal until it succeeds,
// fails to load, or the user stops.
func runEditPage[T any](ctx context.Context, a *App, kind *editsession.Kind[T], key, title string) (*editsession.Session[T], error) {
	s := editsession.Open(a.workspace, kind, key)
	_ = s.Load(ctx)

	printlnFn("== " + title + " ==")
	attempted := false
	for {
		v := s.View()
		a.renderStatus(v)

		if v.Status == editsession.StatusSucceeded {
			printlnFn("Saved.")
			return s, nil
		}
		if !v.Editable() {
			if v.Status == editsession.StatusFailed {
				printlnFn("Run the command again to retry.")
				return s, v.Err
			}
			return s, editsession.ErrNotReady
		}
		if attempted && v.Status == editsession.StatusFailed {
			retry, err := Confirm(a.reader, "Edit and retry?", true, a.out)
			if err != nil {
				return s, err
			}
			if !retry {
				return s, v.Err
			}
		}

		values, err := PromptForm(a.reader, v.Controls, a.out)
		if err != nil {
			return s, err
		}

		save, err := Confirm(a.reader, "Save?", true, a.out)
		if err != nil {
			return s, err
		}
		if !save {
			printlnFn("Not saved. Run the command again to continue editing.")
			return s, nil
		}

		attempted = true
		err = s.Submit(ctx, values)
		if errors.Is(err, editsession.ErrSubmitInProgress) || errors.Is(err, editsession.ErrNotRetryable) {
			printlnFn("Error:", err.Error())
			return s, err
		}
	}
}

// renderStatus prints the notice and the error of v. Transport failures are
// shown as a notice; backend-reported errors are shown next to the form.
func (a *App) renderStatus(v editsession.View) {
	if v.Notice != "" {
		printlnFn("Note:", v.Notice)
	}
	switch {
	case v.Err == nil:
	case v.TransportFailure():
		printlnFn("! Backend unavailable:", v.Err.Error())
	default:
		printlnFn("Error:", v.Err.Error())
	}
}

func (a *App) FoodList(ctx context.Context, filter string) error {
	items, err := a.foods.List(ctx, filter)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(items) == 0 {
		printlnFn("No food found.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBRAND\tKCAL\tP/F/C\tCOMMENT\tKEY")
	for _, f := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", f.Name, f.Brand, models.FormatNumber(f.Cal100), f.PFC(), f.Comment, f.Key)
	}
	return tw.Flush()
}

func (a *App) FoodCreate(ctx context.Context) error {
	s, err := runEditPage(ctx, a, a.food, common.CreateKey, "New food")
	if f, ok := s.Saved(); err == nil && ok {
		printlnFn(fmt.Sprintf("Created food %s. Type 'food' to see the list.", f.Key))
	}
	return err
}

func (a *App) FoodEdit(ctx context.Context, key string) error {
	_, err := runEditPage(ctx, a, a.food, key, fmt.Sprintf("Edit food %q", key))
	return err
}

func (a *App) FoodDelete(ctx context.Context, key string) error {
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete food %s?", key), false, a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.foods.Delete(ctx, key); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if err := a.workspace.Discard(ctx, kinds.FoodName, key); err != nil {
		a.logger.Warn(ctx, "discard edit session failed", "error", err)
	}
	printlnFn("Deleted.")
	return nil
}

func (a *App) Settings(ctx context.Context) error {
	_, err := runEditPage(ctx, a, a.settings, common.UserSettingsKey, "User settings")
	return err
}

func (a *App) WeightList(ctx context.Context, days int) error {
	items, err := a.weights.List(ctx, days)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(items) == 0 {
		printlnFn("No weight entries found.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tWEIGHT\tKEY")
	for _, w := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", w.Day(), models.FormatNumber(w.Value), w.Key())
	}
	return tw.Flush()
}

func (a *App) WeightCreate(ctx context.Context) error {
	s, err := runEditPage(ctx, a, a.weight, common.CreateKey, "New weight entry")
	if w, ok := s.Saved(); err == nil && ok {
		printlnFn(fmt.Sprintf("Recorded weight for %s. Type 'weight' to see the list.", w.Day()))
	}
	return err
}

func (a *App) WeightEdit(ctx context.Context, key string) error {
	title := "Edit weight entry " + key
	if ts, err := kinds.ParseWeightKey(key); err == nil {
		title = "Edit weight for " + models.Weight{Timestamp: ts}.Day()
	}
	_, err := runEditPage(ctx, a, a.weight, key, title)
	return err
}

func (a *App) WeightDelete(ctx context.Context, key string) error {
	ts, err := kinds.ParseWeightKey(key)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete weight entry for %s?", models.Weight{Timestamp: ts}.Day()), false, a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.weights.Delete(ctx, ts); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if err := a.workspace.Discard(ctx, kinds.WeightName, key); err != nil {
		a.logger.Warn(ctx, "discard edit session failed", "error", err)
	}
	printlnFn("Deleted.")
	return nil
}
