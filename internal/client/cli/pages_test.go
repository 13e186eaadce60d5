package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/client/backend"
	"github.com/dmitrijs2005/myhealth/internal/client/cache"
	"github.com/dmitrijs2005/myhealth/internal/client/editsession"
	"github.com/dmitrijs2005/myhealth/internal/client/kinds"
	"github.com/dmitrijs2005/myhealth/internal/client/models"
	"github.com/dmitrijs2005/myhealth/internal/client/services"
	"github.com/dmitrijs2005/myhealth/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements every store and client interface the pages use.
type fakeBackend struct {
	mu sync.Mutex

	foods    map[string]models.Food
	settings *models.UserSettings
	weights  map[int64]models.Weight

	gets      int
	getErr    error
	setErrs   []error
	deleted   []string
	listCalls int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{foods: map[string]models.Food{}, weights: map[int64]models.Weight{}}
}

func (b *fakeBackend) nextSetErr() error {
	if len(b.setErrs) == 0 {
		return nil
	}
	err := b.setErrs[0]
	b.setErrs = b.setErrs[1:]
	return err
}

func (b *fakeBackend) GetFood(_ context.Context, key string) (models.Food, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gets++
	if b.getErr != nil {
		return models.Food{}, b.getErr
	}
	f, ok := b.foods[key]
	if !ok {
		return models.Food{}, &backend.Error{Kind: backend.KindApplication, Message: "food not found"}
	}
	return f, nil
}

func (b *fakeBackend) SetFood(_ context.Context, f models.Food) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.nextSetErr(); err != nil {
		return err
	}
	b.foods[f.Key] = f
	return nil
}

func (b *fakeBackend) ListFood(context.Context) ([]models.Food, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listCalls++
	out := make([]models.Food, 0, len(b.foods))
	for _, f := range b.foods {
		out = append(out, f)
	}
	return out, nil
}

func (b *fakeBackend) DeleteFood(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, key)
	delete(b.foods, key)
	return nil
}

func (b *fakeBackend) GetUserSettings(context.Context) (models.UserSettings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gets++
	if b.settings == nil {
		return models.UserSettings{}, &backend.Error{Kind: backend.KindNotFound, Status: http.StatusNotFound, Message: "settings not found"}
	}
	return *b.settings, nil
}

func (b *fakeBackend) SetUserSettings(_ context.Context, s models.UserSettings) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.settings = &s
	return nil
}

func (b *fakeBackend) GetWeight(_ context.Context, ts int64) (models.Weight, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gets++
	w, ok := b.weights[ts]
	if !ok {
		return models.Weight{}, &backend.Error{Kind: backend.KindApplication, Message: "weight not found"}
	}
	return w, nil
}

func (b *fakeBackend) SetWeight(_ context.Context, w models.Weight) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.weights[w.Timestamp] = w
	return nil
}

func (b *fakeBackend) ListWeight(_ context.Context, _, _ time.Time) ([]models.Weight, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Weight, 0, len(b.weights))
	for _, w := range b.weights {
		out = append(out, w)
	}
	return out, nil
}

func (b *fakeBackend) DeleteWeight(_ context.Context, ts int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.weights, ts)
	return nil
}

func newTestApp(be *fakeBackend) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		logger:    logging.Nop(),
		food:      kinds.Food(be),
		settings:  kinds.UserSettings(be),
		weight:    kinds.Weight(be),
		foods:     services.NewFoodService(be, logging.Nop()),
		weights:   services.NewWeightService(be, logging.Nop()),
		workspace: editsession.NewWorkspace(cache.NewMemory(), logging.Nop()),
		reader:    bufio.NewReader(strings.NewReader("")),
		out:       &out,
	}, &out
}

func feed(a *App, lines ...string) {
	a.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestFoodCreate(t *testing.T) {
	printed := captureOutput(t)
	be := newFakeBackend()
	a, _ := newTestApp(be)

	// name, brand, kcal, prot, fat, carb, comment (keep), save
	feed(a, "Mms", "Mars", "200", "12", "12", "12", "", "")

	require.NoError(t, a.FoodCreate(context.Background()))

	require.Len(t, be.foods, 1)
	for key, f := range be.foods {
		assert.Equal(t, models.Food{Key: key, Name: "Mms", Brand: "Mars", Cal100: 200, Prot100: 12, Fat100: 12, Carb100: 12}, f)
	}
	assert.Contains(t, *printed, "Saved.")
	assert.Zero(t, be.gets)

	require.NoError(t, a.FoodList(context.Background(), ""))
	assert.Equal(t, 1, be.listCalls, "the list re-fetches after create")
}

func TestFoodEdit_ApplicationErrorThenRetry(t *testing.T) {
	printed := captureOutput(t)
	be := newFakeBackend()
	be.foods["mms"] = models.Food{Key: "mms", Name: "Mms", Cal100: 200}
	be.setErrs = []error{&backend.Error{Kind: backend.KindApplication, Message: "duplicate name"}}
	a, _ := newTestApp(be)

	feed(a,
		"dup", "", "", "", "", "", "", "", // first attempt + save
		"", // edit and retry
		"Mms2", "", "", "", "", "", "", "", // second attempt + save
	)

	require.NoError(t, a.FoodEdit(context.Background(), "mms"))

	assert.Contains(t, *printed, "Error: duplicate name")
	assert.Contains(t, *printed, "Saved.")
	assert.Equal(t, "Mms2", be.foods["mms"].Name)
	assert.Equal(t, 200.0, be.foods["mms"].Cal100)
	assert.Equal(t, 1, be.gets, "retry must not re-fetch")
}

func TestFoodEdit_DeclineRetryKeepsDraft(t *testing.T) {
	captureOutput(t)
	be := newFakeBackend()
	be.foods["mms"] = models.Food{Key: "mms", Name: "Mms"}
	be.setErrs = []error{&backend.Error{Kind: backend.KindApplication, Message: "duplicate name"}}
	a, out := newTestApp(be)

	feed(a, "dup", "", "", "", "", "", "", "", "n")
	err := a.FoodEdit(context.Background(), "mms")
	assert.Equal(t, backend.KindApplication, backend.KindOf(err))

	// Re-entering shows the rejected input as the current value.
	out.Reset()
	feed(a, "", "", "", "", "", "", "", "", "", "")
	require.NoError(t, a.FoodEdit(context.Background(), "mms"))
	assert.Contains(t, out.String(), "Name [dup]: ")
	assert.Equal(t, "dup", be.foods["mms"].Name)
	assert.Equal(t, 1, be.gets)
}

func TestFoodEdit_TransportFailureThenReenter(t *testing.T) {
	printed := captureOutput(t)
	be := newFakeBackend()
	be.foods["mms"] = models.Food{Key: "mms", Name: "Mms"}
	be.getErr = &backend.Error{Kind: backend.KindTransport, Err: errors.New("connection refused")}
	a, _ := newTestApp(be)

	err := a.FoodEdit(context.Background(), "mms")
	require.Error(t, err)
	joined := strings.Join(*printed, "\n")
	assert.Contains(t, joined, "! Backend unavailable")
	assert.Contains(t, joined, "Run the command again to retry.")

	be.getErr = nil
	feed(a, "", "", "", "", "", "", "", "")
	require.NoError(t, a.FoodEdit(context.Background(), "mms"))
	assert.Equal(t, 2, be.gets)
}

func TestSettings_FirstTimeUser(t *testing.T) {
	printed := captureOutput(t)
	be := newFakeBackend()
	a, out := newTestApp(be)

	feed(a, "-5", "1800", "")
	require.NoError(t, a.Settings(context.Background()))

	assert.Contains(t, *printed, "Note: settings not found")
	assert.Contains(t, out.String(), "Calorie limit [0]: ")
	assert.Contains(t, out.String(), "try again")
	require.NotNil(t, be.settings)
	assert.Equal(t, 1800.0, be.settings.CalLimit)
}

func TestSettings_NotSaved(t *testing.T) {
	printed := captureOutput(t)
	be := newFakeBackend()
	be.settings = &models.UserSettings{CalLimit: 2000}
	a, _ := newTestApp(be)

	feed(a, "100", "n")
	require.NoError(t, a.Settings(context.Background()))

	assert.Contains(t, *printed, "Not saved. Run the command again to continue editing.")
	assert.Equal(t, 2000.0, be.settings.CalLimit)
}

func TestFoodList(t *testing.T) {
	captureOutput(t)
	be := newFakeBackend()
	be.foods["b"] = models.Food{Key: "b", Name: "Yogurt", Cal100: 60, Prot100: 5, Fat100: 1.5, Carb100: 7}
	be.foods["a"] = models.Food{Key: "a", Name: "Apple", Cal100: 52}
	a, out := newTestApp(be)

	require.NoError(t, a.FoodList(context.Background(), ""))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "Apple"))
	assert.Contains(t, lines[2], "5/1.5/7")
}

func TestFoodList_Empty(t *testing.T) {
	printed := captureOutput(t)
	a, _ := newTestApp(newFakeBackend())

	require.NoError(t, a.FoodList(context.Background(), "nothing"))
	assert.Contains(t, *printed, "No food found.")
}

func TestFoodDelete(t *testing.T) {
	printed := captureOutput(t)
	be := newFakeBackend()
	be.foods["mms"] = models.Food{Key: "mms"}
	a, _ := newTestApp(be)

	feed(a, "n")
	require.NoError(t, a.FoodDelete(context.Background(), "mms"))
	assert.Empty(t, be.deleted)

	feed(a, "y")
	require.NoError(t, a.FoodDelete(context.Background(), "mms"))
	assert.Equal(t, []string{"mms"}, be.deleted)
	assert.Contains(t, *printed, "Deleted.")
}

func TestWeightCreateAndList(t *testing.T) {
	printed := captureOutput(t)
	be := newFakeBackend()
	a, out := newTestApp(be)

	feed(a, "72.4", "")
	require.NoError(t, a.WeightCreate(context.Background()))
	require.Len(t, be.weights, 1)
	joined := strings.Join(*printed, "\n")
	assert.Contains(t, joined, "Recorded weight for")

	require.NoError(t, a.WeightList(context.Background(), 7))
	assert.Contains(t, out.String(), "72.4")
}

func TestWeightDelete_InvalidKey(t *testing.T) {
	printed := captureOutput(t)
	a, _ := newTestApp(newFakeBackend())

	err := a.WeightDelete(context.Background(), "today")
	require.Error(t, err)
	assert.NotEmpty(t, *printed)
}

func TestRun_NonInteractiveHasNoPrompt(t *testing.T) {
	printed := captureOutput(t)
	a, _ := newTestApp(newFakeBackend())
	feed(a, "help", "exit")

	a.Run(context.Background())

	assert.NotContains(t, *printed, "myhealth> ")
	assert.Contains(t, *printed, "Bye!")
	require.NoError(t, a.Close())
}
