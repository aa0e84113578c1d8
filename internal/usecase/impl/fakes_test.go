package impl

import (
	"context"
	"sort"

	"citynav/internal/domain/entity"
	"citynav/internal/domain/repository"
	"citynav/internal/domain/service"
	"citynav/internal/infra/routing"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	byID    map[uuid.UUID]*entity.User
	byEmail map[string]*entity.User
	err     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]*entity.User),
	}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user

	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if f.err != nil {
		return f.err
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user

	return nil
}

type fakeCityRepo struct {
	byID map[uuid.UUID]*entity.City
	err  error
}

func newFakeCityRepo() *fakeCityRepo {
	return &fakeCityRepo{byID: make(map[uuid.UUID]*entity.City)}
}

func (f *fakeCityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.City, error) {
	if f.err != nil {
		return nil, f.err
	}
	city, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrCityNotFound
	}

	return city, nil
}

func (f *fakeCityRepo) List(_ context.Context, filter repository.CityFilter) ([]*entity.City, error) {
	if f.err != nil {
		return nil, f.err
	}
	var cities []*entity.City
	for _, city := range f.byID {
		if !filter.IncludeInactive && !city.IsActive {
			continue
		}
		if filter.CreatedBy != nil && city.CreatedBy != *filter.CreatedBy {
			continue
		}
		cities = append(cities, city)
	}

	return cities, nil
}

func (f *fakeCityRepo) Create(_ context.Context, city *entity.City) error {
	if f.err != nil {
		return f.err
	}
	if city.ID == uuid.Nil {
		city.ID = uuid.New()
	}
	f.byID[city.ID] = city

	return nil
}

func (f *fakeCityRepo) Update(_ context.Context, city *entity.City) error {
	if f.err != nil {
		return f.err
	}
	f.byID[city.ID] = city

	return nil
}

func (f *fakeCityRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return repository.ErrCityNotFound
	}
	delete(f.byID, id)

	return nil
}

type fakeLocationRepo struct {
	byID map[uuid.UUID]*entity.Location
	err  error
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byID: make(map[uuid.UUID]*entity.Location)}
}

func (f *fakeLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	location, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrLocationNotFound
	}

	return location, nil
}

func (f *fakeLocationRepo) List(_ context.Context, filter repository.LocationFilter) ([]*entity.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	var locations []*entity.Location
	for _, location := range f.byID {
		if !filter.IncludeInactive && !location.IsActive {
			continue
		}
		if filter.CityID != nil && location.CityID != *filter.CityID {
			continue
		}
		if filter.CreatedBy != nil && location.CreatedBy != *filter.CreatedBy {
			continue
		}
		locations = append(locations, location)
	}

	return locations, nil
}

func (f *fakeLocationRepo) ListActive(_ context.Context) ([]*entity.Location, error) {
	if f.err != nil {
		return nil, f.err
	}
	var locations []*entity.Location
	for _, location := range f.byID {
		if location.IsActive {
			locations = append(locations, location)
		}
	}

	return locations, nil
}

func (f *fakeLocationRepo) Create(_ context.Context, location *entity.Location) error {
	if f.err != nil {
		return f.err
	}
	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	f.byID[location.ID] = location

	return nil
}

func (f *fakeLocationRepo) Update(_ context.Context, location *entity.Location) error {
	if f.err != nil {
		return f.err
	}
	f.byID[location.ID] = location

	return nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return repository.ErrLocationNotFound
	}
	delete(f.byID, id)

	return nil
}

func (f *fakeLocationRepo) DeleteByCity(_ context.Context, cityID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	for id, location := range f.byID {
		if location.CityID == cityID {
			delete(f.byID, id)
		}
	}

	return nil
}

type fakeRoadRepo struct {
	roads []*entity.Road
	err   error

	// Injected failure for name resolution only.
	namesErr error
}

func (f *fakeRoadRepo) find(id uuid.UUID) *entity.Road {
	for _, road := range f.roads {
		if road.ID == id {
			return road
		}
	}

	return nil
}

func (f *fakeRoadRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Road, error) {
	if f.err != nil {
		return nil, f.err
	}
	road := f.find(id)
	if road == nil {
		return nil, repository.ErrRoadNotFound
	}

	return road, nil
}

func (f *fakeRoadRepo) List(_ context.Context, filter repository.RoadFilter) ([]*entity.Road, error) {
	if f.err != nil {
		return nil, f.err
	}
	var roads []*entity.Road
	for _, road := range f.roads {
		if !filter.IncludeInactive && !road.IsActive {
			continue
		}
		if filter.CreatedBy != nil && road.CreatedBy != *filter.CreatedBy {
			continue
		}
		roads = append(roads, road)
	}

	return roads, nil
}

func (f *fakeRoadRepo) ListActive(_ context.Context) ([]*entity.Road, error) {
	if f.err != nil {
		return nil, f.err
	}
	var roads []*entity.Road
	for _, road := range f.roads {
		if road.IsActive {
			roads = append(roads, road)
		}
	}

	return roads, nil
}

func (f *fakeRoadRepo) FindNamesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.LocalizedText, error) {
	if f.namesErr != nil {
		return nil, f.namesErr
	}
	names := make(map[uuid.UUID]entity.LocalizedText, len(ids))
	for _, id := range ids {
		if road := f.find(id); road != nil {
			names[id] = road.Name
		}
	}

	return names, nil
}

func (f *fakeRoadRepo) Create(_ context.Context, road *entity.Road) error {
	if f.err != nil {
		return f.err
	}
	if road.ID == uuid.Nil {
		road.ID = uuid.New()
	}
	f.roads = append(f.roads, road)

	return nil
}

func (f *fakeRoadRepo) Update(_ context.Context, road *entity.Road) error {
	if f.err != nil {
		return f.err
	}
	for i, existing := range f.roads {
		if existing.ID == road.ID {
			f.roads[i] = road

			return nil
		}
	}

	return repository.ErrRoadNotFound
}

func (f *fakeRoadRepo) Delete(_ context.Context, id uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	for i, road := range f.roads {
		if road.ID == id {
			f.roads = append(f.roads[:i], f.roads[i+1:]...)

			return nil
		}
	}

	return repository.ErrRoadNotFound
}

type fakeRouteRepo struct {
	routes []*entity.Route
	err    error
}

func (f *fakeRouteRepo) Create(_ context.Context, route *entity.Route) error {
	if f.err != nil {
		return f.err
	}
	if route.ID == uuid.Nil {
		route.ID = uuid.New()
	}
	f.routes = append(f.routes, route)

	return nil
}

func (f *fakeRouteRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*entity.Route, error) {
	if f.err != nil {
		return nil, f.err
	}
	var routes []*entity.Route
	for _, route := range f.routes {
		if route.UserID == userID {
			routes = append(routes, route)
		}
	}
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].CreatedAt.After(routes[j].CreatedAt)
	})
	if limit > 0 && len(routes) > limit {
		routes = routes[:limit]
	}

	return routes, nil
}

// fakeRepoFactory hands the same fakes back to transactional callbacks.
type fakeRepoFactory struct {
	users     *fakeUserRepo
	cities    *fakeCityRepo
	locations *fakeLocationRepo
	roads     *fakeRoadRepo
	routes    *fakeRouteRepo
}

func (f *fakeRepoFactory) NewUserRepository() repository.UserRepository { return f.users }

func (f *fakeRepoFactory) NewCityRepository() repository.CityRepository { return f.cities }

func (f *fakeRepoFactory) NewLocationRepository() repository.LocationRepository {
	return f.locations
}

func (f *fakeRepoFactory) NewRoadRepository() repository.RoadRepository { return f.roads }

func (f *fakeRepoFactory) NewRouteRepository() repository.RouteRepository { return f.routes }

// fakeTxManager runs the callback directly against the shared fakes.
type fakeTxManager struct {
	factory *fakeRepoFactory
	err     error
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if f.err != nil {
		return f.err
	}

	return fn(f.factory)
}

type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}

	return "hashed:" + password, nil
}

func (f *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct {
	token string
	err   error
}

func (f *fakeTokenService) GenerateToken(uuid.UUID, []string) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	return f.token, nil
}

func (f *fakeTokenService) ValidateToken(string) (*service.Claims, error) {
	panic("not used in tests")
}

// fakeRebuilder records graph rebuild requests from road mutations.
type fakeRebuilder struct {
	calls int
	err   error
}

func (f *fakeRebuilder) Rebuild(context.Context) error {
	f.calls++

	return f.err
}

// fixedGraphSource serves a prebuilt graph to the route service.
type fixedGraphSource struct {
	graph       *routing.Graph
	maxDistance float64
}

func (f *fixedGraphSource) Snapshot() *routing.Graph      { return f.graph }
func (f *fixedGraphSource) MaxNearestNodeMeters() float64 { return f.maxDistance }
