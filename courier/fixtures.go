package courier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/courier-qa/courier-contract-tests/courierapi"
	"github.com/courier-qa/courier-contract-tests/framework"
	"github.com/courier-qa/courier-contract-tests/framework/harness"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DefaultCleanupTimeout bounds the time that Finalize spends on one fixture.
const DefaultCleanupTimeout = time.Second * 30

// Fixture is a handle to one courier created by a test. It is not safe for concurrent use.
type Fixture struct {
	spec      courierapi.CourierParams
	created   *harness.Response
	state     State
	remoteID  ldvalue.OptionalString
	finalized bool
	release   func()
}

// CreateResponse returns the service's response to the create request.
func (f *Fixture) CreateResponse() *harness.Response { return f.created }

// Spec returns the parameters the courier was created with.
func (f *Fixture) Spec() courierapi.CourierParams { return f.spec }

func (f *Fixture) Login() string { return f.spec.Login }

func (f *Fixture) State() State { return f.state }

// ID returns the courier's remote id, which is only defined once the fixture is resolved.
func (f *Fixture) ID() ldvalue.OptionalString { return f.remoteID }

func (f *Fixture) String() string {
	if f.remoteID.IsDefined() {
		return fmt.Sprintf("courier %q (id %s, %s)", f.spec.Login, f.remoteID.StringValue(), f.state)
	}
	return fmt.Sprintf("courier %q (%s)", f.spec.Login, f.state)
}

func (f *Fixture) releaseLogin() {
	if f.release != nil {
		f.release()
		f.release = nil
	}
}

// Fixtures creates and cleans up courier fixtures.
type Fixtures struct {
	api            *API
	resolver       *Resolver
	cleanupTimeout time.Duration
	logger         framework.Logger
	logins         *loginLocks
}

// NewFixtures creates a fixture manager. If cleanupTimeout is zero, DefaultCleanupTimeout is
// used.
func NewFixtures(api *API, cleanupTimeout time.Duration) *Fixtures {
	if cleanupTimeout <= 0 {
		cleanupTimeout = DefaultCleanupTimeout
	}
	return &Fixtures{
		api:            api,
		resolver:       NewResolver(api),
		cleanupTimeout: cleanupTimeout,
		logger:         framework.NullLogger(),
		logins:         newLoginLocks(),
	}
}

// WithLogger returns a copy that logs its own actions and all of its requests to logger. The
// copy shares login serialization with the original.
func (fs *Fixtures) WithLogger(logger framework.Logger) *Fixtures {
	if logger == nil {
		logger = framework.NullLogger()
	}
	api := fs.api.WithLogger(logger)
	return &Fixtures{
		api:            api,
		resolver:       NewResolver(api),
		cleanupTimeout: fs.cleanupTimeout,
		logger:         framework.PrefixedLogger(logger, "[fixtures] "),
		logins:         fs.logins,
	}
}

func (fs *Fixtures) API() *API { return fs.api }

// Create asks the service to create a courier. On success the returned fixture is in the
// Created state and holds the login until it is finalized. On failure nothing needs to be
// cleaned up: the error is a *CreateError, or the context's error if ctx ended while waiting
// for another fixture with the same login.
func (fs *Fixtures) Create(ctx context.Context, spec courierapi.CourierParams) (*Fixture, error) {
	release, err := fs.logins.acquire(ctx, spec.Login)
	if err != nil {
		return nil, fmt.Errorf("waiting for login %q to be released: %w", spec.Login, err)
	}
	f, err := fs.create(ctx, spec)
	if err != nil {
		release()
		return nil, err
	}
	f.release = release
	return f, nil
}

// CreateSharingLogin asks the service to create a courier with the login of owner, which must
// be a fixture that still holds that login. This is for tests that expect the service to
// refuse a duplicate login; Create would wait for owner to be finalized instead.
//
// If the service accepts the duplicate anyway, the returned fixture must be finalized like any
// other. It does not hold the login, so owner remains responsible for releasing it.
func (fs *Fixtures) CreateSharingLogin(ctx context.Context, owner *Fixture, spec courierapi.CourierParams) (*Fixture, error) {
	if owner == nil || owner.release == nil || owner.spec.Login != spec.Login {
		return nil, fmt.Errorf("login %q is not held by a live fixture", spec.Login)
	}
	return fs.create(ctx, spec)
}

func (fs *Fixtures) create(ctx context.Context, spec courierapi.CourierParams) (*Fixture, error) {
	resp, err := fs.api.CreateCourier(ctx, spec)
	if err != nil {
		return nil, &CreateError{Kind: CreateTransport, Login: spec.Login, Err: err}
	}
	var kind CreateErrorKind
	switch resp.StatusCode {
	case http.StatusCreated:
		fs.logger.Printf("Created courier %q", spec.Login)
		return &Fixture{spec: spec, created: resp, state: Created}, nil
	case http.StatusConflict:
		kind = Conflict
	case http.StatusBadRequest:
		kind = InvalidSpec
	default:
		kind = CreateUnexpectedStatus
	}
	return nil, &CreateError{Kind: kind, Login: spec.Login, Response: resp}
}

// Resolve looks up the fixture's remote id. It does nothing if the id is already known. A
// fixture whose lookup failed stays in the ResolutionFailed state and is not looked up again.
func (fs *Fixtures) Resolve(ctx context.Context, f *Fixture) error {
	if f.remoteID.IsDefined() {
		return nil
	}
	if f.state != Created {
		return fmt.Errorf("cannot resolve %s", f)
	}
	id, err := fs.resolver.Resolve(ctx, f.spec)
	if err != nil {
		f.state = ResolutionFailed
		return err
	}
	f.remoteID = ldvalue.NewOptionalString(id)
	f.state = Resolved
	fs.logger.Printf("Resolved courier %q to id %s", f.spec.Login, id)
	return nil
}

// MarkInUse records that a test has started using a resolved fixture.
func (fs *Fixtures) MarkInUse(f *Fixture) error {
	if f.state != Resolved {
		return fmt.Errorf("cannot use %s", f)
	}
	f.state = InUse
	return nil
}

// Delete asks the service to delete the courier, and returns an error unless it answers with
// 200 {"ok":true}. It refuses to send anything if the fixture's id is not known.
//
// Deleting a fixture that is already deleted sends the request again. The service is expected
// to reject it, and the fixture stays in the Deleted state.
func (fs *Fixtures) Delete(ctx context.Context, f *Fixture) error {
	if !f.remoteID.IsDefined() {
		return ErrNoRemoteID
	}
	id := f.remoteID.StringValue()
	resp, err := fs.api.DeleteCourier(ctx, id)
	if err == nil && resp.StatusCode == http.StatusOK && resp.JSON.GetByKey("ok").BoolValue() {
		f.state = Deleted
		f.releaseLogin()
		fs.logger.Printf("Deleted courier %q (id %s)", f.spec.Login, id)
		return nil
	}
	if f.state != Deleted {
		f.state = DeletionFailed
	}
	return &DeleteError{Login: f.spec.Login, ID: id, Response: resp, Err: err}
}

// Finalize cleans up a fixture: it resolves the id if that has not been attempted yet, and
// then deletes the courier unless it is already deleted. It must be called once for every
// fixture that Create returned; calling it again does nothing.
//
// Finalize ignores cancellation of ctx, using its own timeout instead, so that a test that was
// cancelled still cleans up. It never panics. Anything that went wrong is returned as warnings,
// and the fixture's login is released in any case.
func (fs *Fixtures) Finalize(ctx context.Context, f *Fixture) (warnings []CleanupWarning) {
	if f == nil || f.finalized {
		return nil
	}
	f.finalized = true
	defer f.releaseLogin()
	defer func() {
		if r := recover(); r != nil {
			warnings = append(warnings, CleanupWarning{Login: f.spec.Login, Err: fmt.Errorf("unexpected panic: %v", r)})
		}
	}()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fs.cleanupTimeout)
	defer cancel()

	warn := func(err error) []CleanupWarning {
		fs.logger.Printf("Cleanup of courier %q failed: %s", f.spec.Login, err)
		return append(warnings, CleanupWarning{Login: f.spec.Login, Err: err})
	}

	switch f.state {
	case Unborn, Deleted:
		return nil
	case ResolutionFailed:
		return warn(errors.New("courier was not deleted because its id could not be resolved"))
	case Created:
		if err := fs.Resolve(ctx, f); err != nil {
			return warn(fmt.Errorf("courier was not deleted: %w", err))
		}
	}
	if err := fs.Delete(ctx, f); err != nil {
		return warn(err)
	}
	return nil
}

// UniqueLogin returns a login that starts with prefix and is unique to this call, so that
// fixtures from different runs or different tests never collide.
func UniqueLogin(prefix string) string {
	return prefix + uuid.NewString()[:8]
}

type loginLocks struct {
	lock  sync.Mutex
	slots map[string]chan struct{}
}

func newLoginLocks() *loginLocks {
	return &loginLocks{slots: make(map[string]chan struct{})}
}

func (l *loginLocks) acquire(ctx context.Context, login string) (func(), error) {
	l.lock.Lock()
	slot, ok := l.slots[login]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[login] = slot
	}
	l.lock.Unlock()

	select {
	case slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() { once.Do(func() { <-slot }) }, nil
}
