package services_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgrid/fleet-sdk/modules/core/domain/aggregates/user"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/client"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/aggregates/vehicle"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/entities/reference"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/domain/vehicleimport"
	"github.com/fleetgrid/fleet-sdk/modules/fleet/services"
	"github.com/fleetgrid/fleet-sdk/pkg/composables"
	"github.com/fleetgrid/fleet-sdk/pkg/tabular"
)

type memReferenceRepo struct {
	values map[reference.Kind][]reference.Value
}

func (m *memReferenceRepo) GetAllByKind(_ context.Context, kind reference.Kind) ([]reference.Value, error) {
	return m.values[kind], nil
}

func (m *memReferenceRepo) GetAllActiveByKind(_ context.Context, kind reference.Kind) ([]reference.Value, error) {
	var out []reference.Value
	for _, v := range m.values[kind] {
		if v.IsActive() {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memReferenceRepo) GetByID(_ context.Context, id uuid.UUID) (reference.Value, error) {
	for _, set := range m.values {
		for _, v := range set {
			if v.ID() == id {
				return v, nil
			}
		}
	}
	return reference.Value{}, reference.ErrNotFound
}

func (m *memReferenceRepo) Exists(ctx context.Context, kind reference.Kind, id uuid.UUID) (bool, error) {
	for _, v := range m.values[kind] {
		if v.ID() == id && v.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReferenceRepo) FirstActiveDefault(_ context.Context, kind reference.Kind) (reference.Value, error) {
	for _, v := range m.values[kind] {
		if v.IsDefault() && v.IsActive() {
			return v, nil
		}
	}
	return reference.Value{}, reference.ErrNoDefault
}

func (m *memReferenceRepo) Create(_ context.Context, v reference.Value) (reference.Value, error) {
	return v, nil
}

func (m *memReferenceRepo) Update(_ context.Context, id uuid.UUID, values reference.UpdateValues) (reference.Value, error) {
	return reference.Value{}, reference.ErrNotFound
}

type memClientRepo struct {
	clients []client.Client
}

func (m *memClientRepo) GetPaginated(_ context.Context, _ *client.FindParams) ([]client.Client, int64, error) {
	return m.clients, int64(len(m.clients)), nil
}

func (m *memClientRepo) GetAllActive(_ context.Context) ([]client.Client, error) {
	return m.clients, nil
}

func (m *memClientRepo) GetByID(_ context.Context, id uuid.UUID) (client.Client, error) {
	for _, c := range m.clients {
		if c.ID() == id {
			return c, nil
		}
	}
	return client.Client{}, client.ErrNotFound
}

func (m *memClientRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	for _, c := range m.clients {
		if c.ID() == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memClientRepo) Create(_ context.Context, c client.Client) (client.Client, error) {
	m.clients = append(m.clients, c)
	return c, nil
}

type memVehicleRepo struct {
	mu       sync.Mutex
	byRegNo  map[string]vehicle.Vehicle
	failRegs map[string]error
}

func newMemVehicleRepo() *memVehicleRepo {
	return &memVehicleRepo{
		byRegNo:  make(map[string]vehicle.Vehicle),
		failRegs: make(map[string]error),
	}
}

func (m *memVehicleRepo) GetPaginated(_ context.Context, _ *vehicle.FindParams) ([]vehicle.Vehicle, int64, error) {
	return nil, 0, nil
}

func (m *memVehicleRepo) GetByID(_ context.Context, _ uuid.UUID) (vehicle.Vehicle, error) {
	return vehicle.Vehicle{}, vehicle.ErrNotFound
}

func (m *memVehicleRepo) ExistingRegistrationNos(_ context.Context) (map[string]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]struct{}, len(m.byRegNo))
	for regNo := range m.byRegNo {
		out[regNo] = struct{}{}
	}
	return out, nil
}

func (m *memVehicleRepo) Create(_ context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failRegs[v.RegistrationNo()]; ok {
		return vehicle.Vehicle{}, err
	}
	if _, ok := m.byRegNo[v.RegistrationNo()]; ok {
		return vehicle.Vehicle{}, vehicle.ErrRegistrationTaken
	}
	m.byRegNo[v.RegistrationNo()] = v
	return v, nil
}

var (
	testBodyTypeID = uuid.New()
	testCategoryID = uuid.New()
	testVehTypeID  = uuid.New()
	testClientID   = uuid.New()
)

func newFixture() (*services.VehicleImportService, *memVehicleRepo) {
	now := time.Now()
	refs := &memReferenceRepo{values: map[reference.Kind][]reference.Value{
		reference.KindBodyType: {
			reference.Hydrate(testBodyTypeID, reference.KindBodyType, "Pickup", true, true, uuid.Nil, now, now),
		},
		reference.KindVehicleCategory: {
			reference.Hydrate(testCategoryID, reference.KindVehicleCategory, "Commercial", true, true, uuid.Nil, now, now),
		},
		reference.KindVehicleType: {
			reference.Hydrate(testVehTypeID, reference.KindVehicleType, "Truck", true, true, uuid.Nil, now, now),
		},
	}}
	clients := &memClientRepo{clients: []client.Client{
		client.Hydrate(testClientID, "Acme Ltd", "", "", true, uuid.Nil, now, now),
	}}
	vehicles := newMemVehicleRepo()

	svc := services.NewVehicleImportService(vehicles, clients, refs, services.ImportConfig{
		BatchWidth: 10,
		MaxRows:    500,
	})
	return svc, vehicles
}

func authedContext() context.Context {
	now := time.Now()
	u := user.Hydrate(uuid.New(), "operator@example.com", "Operator", user.RoleOperator, true, now, now)
	return composables.WithUser(context.Background(), u)
}

func csvFile(rows ...string) []byte {
	header := "registration_no,make,model,year,chassis_no,engine_no,body_type,category,vehicle_type,client"
	return []byte(strings.Join(append([]string{header}, rows...), "\n"))
}

func TestImport_WritesValidRowsAndLedgersFailures(t *testing.T) {
	svc, vehicles := newFixture()

	data := csvFile(
		"KAA 001A,Toyota,Hilux,2018,CH1,EN1,Pickup,Commercial,Truck,Acme Ltd",
		"KAA 002B,Isuzu,NQR,2020,CH2,,Pickup,Commercial,Truck,Acme Ltd",
		"KAA 003C,Ford,Ranger,2019,CH3,EN3,Hovercraft,Commercial,Truck,Acme Ltd",
	)

	summary, err := svc.Import(authedContext(), &services.ImportCommand{
		Data:     data,
		Filename: "vehicles.csv",
		Mode:     vehicleimport.ModeNames,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, summary.Total, summary.Succeeded+summary.Failed)

	_, written := vehicles.byRegNo["KAA 001A"]
	assert.True(t, written)
	assert.Len(t, vehicles.byRegNo, 1)
}

func TestImport_StampsActorAndActiveFlag(t *testing.T) {
	svc, vehicles := newFixture()
	ctx := authedContext()
	u, err := composables.UseUser(ctx)
	require.NoError(t, err)

	data := csvFile("KAA 001A,Toyota,Hilux,2018,CH1,EN1,Pickup,Commercial,Truck,Acme Ltd")
	_, err = svc.Import(ctx, &services.ImportCommand{Data: data, Filename: "vehicles.csv", Mode: vehicleimport.ModeNames})
	require.NoError(t, err)

	v := vehicles.byRegNo["KAA 001A"]
	assert.Equal(t, u.ID(), v.CreatedBy())
	assert.Equal(t, u.ID(), v.UpdatedBy())
	assert.True(t, v.IsActive())
	assert.Equal(t, testClientID, v.ClientID())
	assert.Equal(t, testBodyTypeID, v.BodyTypeID())
}

func TestImport_RequiresActingUser(t *testing.T) {
	svc, _ := newFixture()

	data := csvFile("KAA 001A,Toyota,Hilux,2018,CH1,EN1,Pickup,Commercial,Truck,Acme Ltd")
	_, err := svc.Import(context.Background(), &services.ImportCommand{Data: data, Filename: "vehicles.csv", Mode: vehicleimport.ModeNames})
	require.ErrorIs(t, err, composables.ErrNoUser)
}

func TestImport_MissingColumnAbortsWholeRun(t *testing.T) {
	svc, vehicles := newFixture()

	data := []byte("registration_no,make,model,year,chassis_no\nKAA 001A,Toyota,Hilux,2018,CH1")
	_, err := svc.Import(authedContext(), &services.ImportCommand{Data: data, Filename: "vehicles.csv", Mode: vehicleimport.ModeNames})

	var missing *vehicleimport.MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Columns, "engine_no")
	assert.Empty(t, vehicles.byRegNo)
}

func TestImport_UndecodableFileIsRejected(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Import(authedContext(), &services.ImportCommand{
		Data:     []byte{0x00, 0x01, 0x02, 0x03},
		Filename: "vehicles.bin",
		Mode:     vehicleimport.ModeNames,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrUnsupportedFormat)
}

func TestImport_EmptyTableIsDecodeError(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.Import(authedContext(), &services.ImportCommand{
		Data:     []byte("registration_no,make,model\n"),
		Filename: "vehicles.csv",
		Mode:     vehicleimport.ModeNames,
	})
	require.ErrorIs(t, err, tabular.ErrDecode)
}

func TestImport_DuplicateRaceDuringWriteStaysRowScoped(t *testing.T) {
	svc, vehicles := newFixture()
	// Simulate another writer grabbing the key between the pre-check and
	// the insert.
	vehicles.failRegs["KAA 002B"] = vehicle.ErrRegistrationTaken

	data := csvFile(
		"KAA 001A,Toyota,Hilux,2018,CH1,EN1,Pickup,Commercial,Truck,Acme Ltd",
		"KAA 002B,Isuzu,NQR,2020,CH2,EN2,Pickup,Commercial,Truck,Acme Ltd",
	)
	summary, err := svc.Import(authedContext(), &services.ImportCommand{Data: data, Filename: "vehicles.csv", Mode: vehicleimport.ModeNames})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, summary.Results[1].Message, "already exists")
}

func TestImport_PreselectedOwnerAndSideReferences(t *testing.T) {
	svc, vehicles := newFixture()

	extraBodyType := uuid.New()
	data := []byte(strings.Join([]string{
		"registration_no,make,model,year,chassis_no,engine_no,body_type,category,vehicle_type",
		"KAA 009Z,Scania,R450,2021,CH9,EN9,Flatbed,Commercial,Truck",
	}, "\n"))

	summary, err := svc.Import(authedContext(), &services.ImportCommand{
		Data:     data,
		Filename: "vehicles.csv",
		Mode:     vehicleimport.ModeNames,
		OwnerID:  testClientID,
		References: map[string][]services.SideReference{
			"body_type": {{ID: extraBodyType.String(), Name: "Flatbed"}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Succeeded)

	v := vehicles.byRegNo["KAA 009Z"]
	assert.Equal(t, testClientID, v.ClientID())
	assert.Equal(t, extraBodyType, v.BodyTypeID())
}

func TestImport_UnknownOwnerIsRejected(t *testing.T) {
	svc, _ := newFixture()

	data := csvFile("KAA 001A,Toyota,Hilux,2018,CH1,EN1,Pickup,Commercial,Truck,Acme Ltd")
	_, err := svc.Import(authedContext(), &services.ImportCommand{
		Data:     data,
		Filename: "vehicles.csv",
		Mode:     vehicleimport.ModeNames,
		OwnerID:  uuid.New(),
	})
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestImport_IDsMode(t *testing.T) {
	svc, vehicles := newFixture()

	header := "registration_no,make,model,year,chassis_no,engine_no,body_type_id,category_id,vehicle_type_id,client_id"
	good := fmt.Sprintf("KAA 001A,Toyota,Hilux,2018,CH1,EN1,%s,%s,%s,%s", testBodyTypeID, testCategoryID, testVehTypeID, testClientID)
	bad := fmt.Sprintf("KAA 002B,Isuzu,NQR,2020,CH2,EN2,%s,%s,%s,%s", uuid.New(), testCategoryID, testVehTypeID, testClientID)
	data := []byte(strings.Join([]string{header, good, bad}, "\n"))

	summary, err := svc.Import(authedContext(), &services.ImportCommand{
		Data:     data,
		Filename: "vehicles.csv",
		Mode:     vehicleimport.ModeIDs,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, summary.Results[1].Message, "body_type_id")
	assert.Len(t, vehicles.byRegNo, 1)
}
