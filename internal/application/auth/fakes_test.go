package auth

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos del use case
// ──────────────────────────────────────────────────────────────────────────────

// registryState estado compartido por los tres repos fake; simula el registro
// relacional con sus constraints únicos.
type registryState struct {
	companies map[int64]*entity.Company
	users     map[string]*entity.User // por id
	phones    map[int64][]*entity.Phone
	nextID    int64

	failCompanyCreate error // si no es nil, Create de company falla con este error
}

func newRegistryState() *registryState {
	return &registryState{
		companies: map[int64]*entity.Company{},
		users:     map[string]*entity.User{},
		phones:    map[int64][]*entity.Phone{},
	}
}

func (s *registryState) snapshot() *registryState {
	c := newRegistryState()
	c.nextID = s.nextID
	c.failCompanyCreate = s.failCompanyCreate
	for k, v := range s.companies {
		cp := *v
		if v.PendingCode != nil {
			pc := *v.PendingCode
			cp.PendingCode = &pc
		}
		c.companies[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	for k, v := range s.phones {
		c.phones[k] = append([]*entity.Phone(nil), v...)
	}
	return c
}

func (s *registryState) restore(from *registryState) {
	s.companies = from.companies
	s.users = from.users
	s.phones = from.phones
	s.nextID = from.nextID
}

type fakeCompanyRepo struct{ s *registryState }

var _ repository.CompanyRepository = (*fakeCompanyRepo)(nil)

func (r *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	if r.s.failCompanyCreate != nil {
		return r.s.failCompanyCreate
	}
	for _, existing := range r.s.companies {
		if existing.NombreUsuario == c.NombreUsuario {
			return domain.ErrNombreUsuarioTaken
		}
		if existing.EmailContacto == c.EmailContacto {
			return domain.ErrEmailContactoTaken
		}
		if existing.RUC != nil && c.RUC != nil && *existing.RUC == *c.RUC {
			return domain.ErrRUCTaken
		}
	}
	r.s.nextID++
	c.ID = r.s.nextID
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) findBy(pred func(*entity.Company) bool) (*entity.Company, error) {
	for _, c := range r.s.companies {
		if pred(c) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) GetByNombreUsuario(_ context.Context, nombre string) (*entity.Company, error) {
	return r.findBy(func(c *entity.Company) bool { return c.NombreUsuario == nombre })
}

func (r *fakeCompanyRepo) GetByEmailContacto(_ context.Context, email string) (*entity.Company, error) {
	return r.findBy(func(c *entity.Company) bool { return c.EmailContacto == email })
}

func (r *fakeCompanyRepo) GetByRUC(_ context.Context, ruc string) (*entity.Company, error) {
	return r.findBy(func(c *entity.Company) bool { return c.RUC != nil && *c.RUC == ruc })
}

func (r *fakeCompanyRepo) SetPendingCode(_ context.Context, id int64, code *entity.PendingCode) error {
	c, ok := r.s.companies[id]
	if !ok {
		return fmt.Errorf("empresa %d no existe", id)
	}
	c.PendingCode = code
	return nil
}

func (r *fakeCompanyRepo) MarkVerified(_ context.Context, id int64) error {
	c, ok := r.s.companies[id]
	if !ok {
		return fmt.Errorf("empresa %d no existe", id)
	}
	c.Verificado = true
	c.PendingCode = nil
	return nil
}

func (r *fakeCompanyRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.companies, id)
	return nil
}

type fakeUserRepo struct{ s *registryState }

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrNombreUsuarioTaken
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByCompanyAndRol(_ context.Context, companyID int64, rol entity.Rol) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.CompanyID == companyID && u.Rol == rol {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	u, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("usuario %s no existe", id)
	}
	u.PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) DeleteByCompany(_ context.Context, companyID int64) error {
	for id, u := range r.s.users {
		if u.CompanyID == companyID {
			delete(r.s.users, id)
		}
	}
	return nil
}

type fakePhoneRepo struct{ s *registryState }

var _ repository.PhoneRepository = (*fakePhoneRepo)(nil)

func (r *fakePhoneRepo) CreateBatch(_ context.Context, companyID int64, numeros []string) ([]*entity.Phone, error) {
	var out []*entity.Phone
	for _, n := range numeros {
		r.s.nextID++
		p := &entity.Phone{ID: r.s.nextID, CompanyID: companyID, Numero: n}
		r.s.phones[companyID] = append(r.s.phones[companyID], p)
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePhoneRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.Phone, error) {
	return r.s.phones[companyID], nil
}

func (r *fakePhoneRepo) DeleteByCompany(_ context.Context, companyID int64) error {
	delete(r.s.phones, companyID)
	return nil
}

// fakeTxRunner simula la atomicidad: toma un snapshot del estado y lo
// restaura si el callback falla.
type fakeTxRunner struct{ s *registryState }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	companies repository.CompanyRepository,
	users repository.UserRepository,
	phones repository.PhoneRepository,
) error) error {
	before := t.s.snapshot()
	err := fn(&fakeCompanyRepo{t.s}, &fakeUserRepo{t.s}, &fakePhoneRepo{t.s})
	if err != nil {
		t.s.restore(before)
	}
	return err
}

type fakeAssetStore struct {
	nextKey int
	stored  []string // claves vivas
	deleted []string
	fail    bool
}

func (f *fakeAssetStore) Store(_ context.Context, r io.Reader, filename string) (*StoredAsset, error) {
	if f.fail {
		return nil, fmt.Errorf("asset store caído")
	}
	_, _ = io.Copy(io.Discard, r)
	f.nextKey++
	key := fmt.Sprintf("logo-%d-%s", f.nextKey, filename)
	f.stored = append(f.stored, key)
	return &StoredAsset{URL: "/uploads/" + key, DeleteKey: key}, nil
}

func (f *fakeAssetStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	for i, k := range f.stored {
		if k == key {
			f.stored = append(f.stored[:i], f.stored[i+1:]...)
			break
		}
	}
	return nil
}

type sentMail struct {
	To   string
	Code string
	Kind entity.CodeKind
}

type fakeNotifier struct {
	sent []sentMail
	fail bool
}

func (f *fakeNotifier) Send(_ context.Context, to, code string, kind entity.CodeKind) error {
	if f.fail {
		return fmt.Errorf("smtp rechazó el mensaje")
	}
	f.sent = append(f.sent, sentMail{To: to, Code: code, Kind: kind})
	return nil
}

// plainHasher hash reversible solo para tests (bcrypt es lento y aquí no
// aporta nada).
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (plainHasher) Verify(hash, password string) error {
	if hash != "h:"+password {
		return fmt.Errorf("hash no coincide")
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixtures struct {
	uc       *AuthUseCase
	state    *registryState
	assets   *fakeAssetStore
	notifier *fakeNotifier
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()
	state := newRegistryState()
	assets := &fakeAssetStore{}
	notifier := &fakeNotifier{}
	uc := NewAuthUseCase(
		&fakeCompanyRepo{state}, &fakeUserRepo{state}, &fakePhoneRepo{state},
		&fakeTxRunner{state}, assets, notifier, plainHasher{},
		JWTConfig{Secret: "test-secret", ExpMinutes: 480, Issuer: "test"},
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
	return &fixtures{uc: uc, state: state, assets: assets, notifier: notifier}
}

func logoReader() io.Reader { return strings.NewReader("png-bytes") }
