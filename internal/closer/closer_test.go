package closer

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/storeclose/pkg/types"
)

// fakeStore is an in-memory TableStore. Sheets are dense [][]string grids
// indexed by 1-based row position.
type fakeStore struct {
	sheets    map[string][][]string
	readErr   error
	writeErr  error
	appendErr error

	writeCount  int
	appendCount int
}

func (s *fakeStore) ReadRows(sheet string) ([]types.TableRow, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	grid, ok := s.sheets[sheet]
	if !ok {
		return nil, types.ErrSheetNotFound
	}
	rows := make([]types.TableRow, 0, len(grid))
	for i, cells := range grid {
		rows = append(rows, types.TableRow{Position: i + 1, Cells: cells})
	}
	return rows, nil
}

func (s *fakeStore) WriteCell(sheet string, row, column int, value string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	grid := s.sheets[sheet]
	for len(grid) < row {
		grid = append(grid, nil)
	}
	for len(grid[row-1]) < column {
		grid[row-1] = append(grid[row-1], "")
	}
	grid[row-1][column-1] = value
	s.sheets[sheet] = grid
	s.writeCount++
	return nil
}

func (s *fakeStore) AppendRow(sheet string, startRow int, values []string) (int, error) {
	if s.appendErr != nil {
		return 0, s.appendErr
	}
	grid := s.sheets[sheet]
	pos := startRow
	for ; pos <= len(grid); pos++ {
		empty := true
		for _, c := range grid[pos-1] {
			if c != "" {
				empty = false
				break
			}
		}
		if empty {
			break
		}
	}
	for len(grid) < pos {
		grid = append(grid, nil)
	}
	grid[pos-1] = append([]string(nil), values...)
	s.sheets[sheet] = grid
	s.appendCount++
	return pos, nil
}

// fakeMirror records UpdateStatus calls.
type fakeMirror struct {
	err    error
	codes  []string
	status []int
}

func (m *fakeMirror) UpdateStatus(code string, status int) error {
	if m.err != nil {
		return m.err
	}
	m.codes = append(m.codes, code)
	m.status = append(m.status, status)
	return nil
}

var testTime = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func newTestStore() *fakeStore {
	return &fakeStore{sheets: map[string][][]string{
		"Gerenciador": {
			{"Gerenciador de Lojas"}, // rows 1-5 are header block
			nil,
			{"Grupo", "Nome"},
			nil,
			nil,
			{"x", "y", "456", "Ativa", "", "", "Loja Centro"},
			{"x", "y", "123", "Ativa", "", "", "Loja Norte"},
			{"x", "y", "I05", "Fechada", "", "", "Loja Sul"},
		},
		"Lojas Fechadas": {
			{"", "Nome", "Número", "Atualizada", "Data", "Observação"},
		},
	}}
}

func newTestCloser(t *testing.T, store *fakeStore, mirror types.StatusMirror) *Closer {
	t.Helper()
	cfg := types.DefaultConfig()
	c, err := New(&cfg, store, mirror, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	c.now = func() time.Time { return testTime }
	return c
}

func TestCloseStore(t *testing.T) {
	store := newTestStore()
	c := newTestCloser(t, store, nil)

	out := c.CloseStore(456, "")

	assert.Equal(t, types.OutcomeClosed, out.Kind)
	assert.Equal(t, "456", out.Identifier)
	assert.Equal(t, 6, out.Row)
	assert.Equal(t, testTime, out.Timestamp)

	manager := store.sheets["Gerenciador"]
	assert.Equal(t, "Fechada", manager[5][3], "status column D on row 6")
	assert.Equal(t, "", manager[5][0], "column A cleared")
	assert.Equal(t, "", manager[5][1], "column B cleared")
	assert.Equal(t, "456", manager[5][2], "identifier untouched")

	archive := store.sheets["Lojas Fechadas"]
	require.Len(t, archive, 2, "one archive row appended at row 2")
	appended := archive[1]
	assert.Equal(t, "Loja Centro", appended[1], "name in column B")
	assert.Equal(t, "456", appended[2], "canonical identifier in column C")
	assert.Equal(t, "NÃO", appended[3], "pending literal in column D")
	assert.Equal(t, "15/03/2024", appended[4], "closure date in column E")
	assert.NotEmpty(t, appended[5], "default observation in column F")
}

func TestCloseStoreHeterogeneousIdentifier(t *testing.T) {
	// 456, "456" and 456.0 must all close the same row.
	for _, id := range []any{456, "456", 456.0, "456.0"} {
		store := newTestStore()
		c := newTestCloser(t, store, nil)
		out := c.CloseStore(id, "")
		assert.Equal(t, types.OutcomeClosed, out.Kind, "identifier %v", id)
		assert.Equal(t, "456", out.Identifier)
	}
}

func TestCloseStoreObservationSupplied(t *testing.T) {
	store := newTestStore()
	c := newTestCloser(t, store, nil)

	out := c.CloseStore("123", "fechamento programado")
	require.Equal(t, types.OutcomeClosed, out.Kind)

	archive := store.sheets["Lojas Fechadas"]
	assert.Equal(t, "fechamento programado", archive[1][5])
}

func TestCloseStoreNotFound(t *testing.T) {
	store := newTestStore()
	c := newTestCloser(t, store, nil)

	out := c.CloseStore("999", "")

	assert.Equal(t, types.OutcomeNotFound, out.Kind)
	assert.Equal(t, "999", out.Identifier)
	assert.Zero(t, store.writeCount, "no writes on not-found")
	assert.Zero(t, store.appendCount)
}

func TestCloseStoreAlreadyClosedIsIdempotent(t *testing.T) {
	store := newTestStore()
	c := newTestCloser(t, store, nil)

	first := c.CloseStore("123", "")
	require.Equal(t, types.OutcomeClosed, first.Kind)
	appends := store.appendCount

	second := c.CloseStore("123", "")
	assert.Equal(t, types.OutcomeAlreadyClosed, second.Kind)
	assert.Equal(t, appends, store.appendCount, "no second archive row")
}

func TestCloseStorePreClosedRow(t *testing.T) {
	store := newTestStore()
	c := newTestCloser(t, store, nil)

	out := c.CloseStore("I05", "")
	assert.Equal(t, types.OutcomeAlreadyClosed, out.Kind)
	assert.Zero(t, store.writeCount)
	assert.Zero(t, store.appendCount)
}

func TestCloseStoreInvalidIdentifier(t *testing.T) {
	store := newTestStore()
	c := newTestCloser(t, store, nil)

	assert.Equal(t, types.OutcomeFailed, c.CloseStore("lo ja", "").Kind)
	assert.Equal(t, types.OutcomeFailed, c.CloseStore([]string{"x"}, "").Kind)
	assert.Zero(t, store.writeCount)
}

func TestCloseStoreWriteFailure(t *testing.T) {
	store := newTestStore()
	store.writeErr = errors.New("cell write rejected")
	c := newTestCloser(t, store, nil)

	out := c.CloseStore("456", "")
	assert.Equal(t, types.OutcomeFailed, out.Kind)
	assert.Contains(t, out.Message, "cell write rejected")
	assert.Zero(t, store.appendCount, "append not reached after status write failure")
}

func TestCloseStoreAppendFailure(t *testing.T) {
	store := newTestStore()
	store.appendErr = errors.New("archive append rejected")
	c := newTestCloser(t, store, nil)

	out := c.CloseStore("456", "")
	assert.Equal(t, types.OutcomeFailed, out.Kind)
	assert.Contains(t, out.Message, "archive append rejected")
}

func TestCloseStoreMirror(t *testing.T) {
	store := newTestStore()
	mirror := &fakeMirror{}
	c := newTestCloser(t, store, mirror)

	out := c.CloseStore("456", "")
	require.Equal(t, types.OutcomeClosed, out.Kind)
	assert.Equal(t, []string{"456"}, mirror.codes)
	assert.Equal(t, []int{3}, mirror.status)
}

func TestCloseStoreMirrorFailure(t *testing.T) {
	store := newTestStore()
	mirror := &fakeMirror{err: errors.New("mirror unreachable")}
	c := newTestCloser(t, store, mirror)

	out := c.CloseStore("456", "")
	assert.Equal(t, types.OutcomeFailed, out.Kind)
	assert.Contains(t, out.Message, "mirror unreachable")
}

func TestCloseStores(t *testing.T) {
	store := newTestStore()
	c := newTestCloser(t, store, nil)

	outcomes := c.CloseStores([]string{"123", "456", "999"}, "")

	require.Len(t, outcomes, 3)
	assert.Equal(t, "123", outcomes[0].Identifier, "input order preserved")
	assert.Equal(t, "456", outcomes[1].Identifier)
	assert.Equal(t, "999", outcomes[2].Identifier)

	s := types.Summarize(outcomes)
	assert.Equal(t, 2, s.Closed+s.AlreadyClosed)
	assert.Equal(t, 1, s.NotFound)
	assert.Equal(t, 0, s.Failed)
}

func TestCloseStoresFailureDoesNotAbortBatch(t *testing.T) {
	store := newTestStore()
	mirror := &fakeMirror{err: errors.New("mirror down")}
	c := newTestCloser(t, store, mirror)

	outcomes := c.CloseStores([]string{"123", "456"}, "")

	require.Len(t, outcomes, 2)
	assert.Equal(t, types.OutcomeFailed, outcomes[0].Kind)
	assert.Equal(t, types.OutcomeFailed, outcomes[1].Kind, "second store still processed")
}

func TestInfo(t *testing.T) {
	store := newTestStore()
	c := newTestCloser(t, store, nil)

	info, err := c.Info("456")
	require.NoError(t, err)
	assert.Equal(t, "456", info.Identifier)
	assert.Equal(t, "Loja Centro", info.Name)
	assert.Equal(t, "y", info.Group)
	assert.Equal(t, "Ativa", info.Status)
	assert.Equal(t, 6, info.Row)

	assert.Zero(t, store.writeCount, "info performs no writes")
	assert.Zero(t, store.appendCount)
}

func TestInfoNotFound(t *testing.T) {
	store := newTestStore()
	c := newTestCloser(t, store, nil)

	_, err := c.Info("999")
	assert.ErrorIs(t, err, types.ErrStoreNotFound)
}

func TestCloseStoreMissingName(t *testing.T) {
	store := newTestStore()
	store.sheets["Gerenciador"][5] = []string{"x", "y", "456", "Ativa"}
	c := newTestCloser(t, store, nil)

	out := c.CloseStore("456", "")
	require.Equal(t, types.OutcomeClosed, out.Kind)
	assert.Equal(t, "Loja 456", store.sheets["Lojas Fechadas"][1][1], "fallback name")
}
