package catalog

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chargesmart/backend/services/recommendation-service/internal/models"
)

type fakeSource struct {
	mu       sync.Mutex
	stations []models.Station
	err      error
	loads    int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(context.Context) ([]models.Station, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Station(nil), f.stations...), nil
}

func (f *fakeSource) set(stations []models.Station, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stations = stations
	f.err = err
}

func (f *fakeSource) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []observation
}

type observation struct {
	source   string
	stations int
	err      error
}

func (r *recordingObserver) ObserveCatalogRefresh(source string, stations int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, observation{source, stations, err})
}

func TestSeedSourceReturnsCopies(t *testing.T) {
	src := NewSeedSource()
	first, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, "ST001", first[0].ID)

	first[0].Name = "changed"
	first[0].Profile.ConnectorTypes[0] = "changed"

	second, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Chennai Central", second[0].Name)
	assert.Equal(t, models.ConnectorCCS2, second[0].Profile.ConnectorTypes[0])
}

func TestDefaultStationsAreValid(t *testing.T) {
	for _, st := range DefaultStations() {
		assert.NoError(t, st.Validate(), st.ID)
	}
}

func TestSnapshotRefreshSkipsInvalid(t *testing.T) {
	stations := DefaultStations()
	bad := stations[0]
	bad.ID = "BAD"
	bad.Profile = &models.ChargingProfile{ChargerKW: 0}
	src := &fakeSource{stations: append(stations, bad)}
	obs := &recordingObserver{}

	snap := NewSnapshot(src, obs, zap.NewNop())
	assert.Nil(t, snap.Stations())
	assert.True(t, snap.LoadedAt().IsZero())

	require.NoError(t, snap.Refresh(context.Background()))
	assert.Equal(t, 3, snap.Len())
	assert.False(t, snap.LoadedAt().IsZero())
	require.Len(t, obs.calls, 1)
	assert.Equal(t, observation{"fake", 3, nil}, obs.calls[0])
}

func TestSnapshotKeepsPreviousOnError(t *testing.T) {
	src := &fakeSource{stations: DefaultStations()}
	obs := &recordingObserver{}
	snap := NewSnapshot(src, obs, zap.NewNop())
	require.NoError(t, snap.Refresh(context.Background()))

	boom := errors.New("db down")
	src.set(nil, boom)
	err := snap.Refresh(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, snap.Len())

	src.set([]models.Station{{ID: "X", Lat: 200}}, nil)
	err = snap.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCatalog)
	assert.Equal(t, 3, snap.Len())
	assert.Len(t, obs.calls, 3)
}

func TestSnapshotStationsAreIsolated(t *testing.T) {
	snap := NewSnapshot(NewSeedSource(), nil, zap.NewNop())
	require.NoError(t, snap.Refresh(context.Background()))

	got := snap.Stations()
	got[0].AvailableSlots = 99
	got[0].Profile.AvailableBatteries = 99

	again := snap.Stations()
	assert.Equal(t, 1, again[0].AvailableSlots)
	assert.Equal(t, 2, again[0].Profile.AvailableBatteries)
	assert.Equal(t, "seed", snap.SourceName())
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func TestScanStationWithProfile(t *testing.T) {
	row := fakeRow{values: []any{
		"ST009", "Adyar", 13.0, 80.25, "ACTIVE", 3, "Fast",
		sql.NullString{String: "CCS2, Type2", Valid: true},
		sql.NullFloat64{Float64: 35, Valid: true},
		sql.NullFloat64{Float64: 90, Valid: true},
		sql.NullFloat64{Float64: 60, Valid: true},
		sql.NullString{String: "Li-ion 60V", Valid: true},
		sql.NullInt64{Int64: 5, Valid: true},
	}}

	st, err := scanStation(row)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, st.Status)
	assert.Equal(t, models.PowerFast, st.PowerLevel)
	require.NotNil(t, st.Profile)
	assert.Equal(t, []models.ConnectorType{models.ConnectorCCS2, models.ConnectorType2}, st.Profile.ConnectorTypes)
	assert.Equal(t, 60.0, st.Profile.ChargerKW)
	assert.Equal(t, models.BatteryLiIon60V, st.Profile.BatteryType)
	assert.Equal(t, 5, st.Profile.AvailableBatteries)
	assert.NoError(t, st.Validate())
}

func TestScanStationWithoutProfile(t *testing.T) {
	row := fakeRow{values: []any{
		"ST010", "Porur", 13.03, 80.15, "inactive", 0, "slow",
		sql.NullString{}, sql.NullFloat64{}, sql.NullFloat64{}, sql.NullFloat64{},
		sql.NullString{}, sql.NullInt64{},
	}}

	st, err := scanStation(row)
	require.NoError(t, err)
	assert.Nil(t, st.Profile)
	assert.Equal(t, models.StatusInactive, st.Status)
}

func TestScanStationError(t *testing.T) {
	_, err := scanStation(fakeRow{err: sql.ErrNoRows})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

type fakeHash struct {
	docs map[string]string
	err  error
	key  string
}

func (f *fakeHash) HGetAll(_ context.Context, key string) *redis.MapStringStringCmd {
	f.key = key
	return redis.NewMapStringStringResult(f.docs, f.err)
}

func TestRedisSourceLoadSortsByID(t *testing.T) {
	hash := &fakeHash{docs: map[string]string{
		"ST002": `{"id":"ST002","name":"Velachery","lat":12.98,"lon":80.22,"status":"active","available_slots":0,"power_level":"slow"}`,
		"ST001": `{"name":"Chennai Central","lat":13.08,"lon":80.27,"status":"active","available_slots":1,"power_level":"fast",
			"profile":{"connector_types":["CCS2","Type2"],"current_vehicle_battery":40,"target_battery":80,"charger_kw":22,"battery_type":"Li-ion 48V","available_batteries":2}}`,
	}}
	src := newRedisSource(hash, "")

	stations, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultRedisKey, hash.key)
	require.Len(t, stations, 2)
	assert.Equal(t, "ST001", stations[0].ID)
	require.NotNil(t, stations[0].Profile)
	assert.Equal(t, 22.0, stations[0].Profile.ChargerKW)
	assert.Nil(t, stations[1].Profile)
	assert.Equal(t, "redis", src.Name())
}

func TestRedisSourceErrors(t *testing.T) {
	_, err := newRedisSource(&fakeHash{err: redis.Nil}, "k").Load(context.Background())
	assert.ErrorIs(t, err, redis.Nil)

	_, err = newRedisSource(&fakeHash{docs: map[string]string{"x": "{"}}, "k").Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode station x")
}

func TestRefresherDisabled(t *testing.T) {
	src := &fakeSource{stations: DefaultStations()}
	r := NewRefresher(NewSnapshot(src, nil, zap.NewNop()), 0, zap.NewNop())
	require.NoError(t, r.Start())
	r.Stop()
	assert.Equal(t, 0, src.loadCount())
}

func TestRefresherReloadsPeriodically(t *testing.T) {
	src := &fakeSource{stations: DefaultStations()}
	snap := NewSnapshot(src, nil, zap.NewNop())
	r := NewRefresher(snap, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, r.Start())
	defer r.Stop()

	require.Eventually(t, func() bool { return src.loadCount() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, snap.Len())
}

func TestObserversFanOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	Observers{a, nil, b}.ObserveCatalogRefresh("seed", 3, nil)
	assert.Len(t, a.calls, 1)
	assert.Len(t, b.calls, 1)
}
