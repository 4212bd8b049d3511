// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/infra/dependency"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
	"github.com/expense-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret       = "test-jwt-secret-key-for-testing-purposes"
	defaultTestPassword = "DefaultPass123"
)

// testContext holds the state of a single scenario.
type testContext struct {
	uri       string
	headers   map[string]string
	client    *http.Client
	response  *response
	db        *mock.Db
	timeMock  *mock.Time
	passwords map[string]string

	accessToken          string
	refreshToken         string
	previousRefreshToken string
	currentUserID uuid.UUID
	userIDs       map[string]uuid.UUID
	expenseIDs    []uuid.UUID
}

type response struct {
	status int
	body   any
}

var (
	serverInit sync.Once
	server     *httptest.Server
	timeMock   = mock.NewTime()
)

func newTestDB() *mock.Db {
	return mock.NewDb("expense_tracker", map[string]any{
		"users":          &model.UserModel{},
		"refresh_tokens": &model.RefreshTokenModel{},
		"expenses":       &model.ExpenseModel{},
	})
}

// testConfig returns the configuration used by the in-process API server.
// The environment is not "test" so the login rate limiter stays active.
func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "e2e"
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 7 * 24 * time.Hour
	cfg.RateLimit.MaxAttempts = 5
	cfg.RateLimit.Window = time.Minute
	cfg.Security.BcryptCost = bcrypt.MinCost
	return cfg
}

func startServer() {
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)
		cfg := testConfig()
		injector := dependency.NewInjector(cfg, newTestDB().DbConn, mock.NewRedis(), timeMock)
		server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if server != nil {
			server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		db:       newTestDB(),
		timeMock: timeMock,
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)

	// Expense setup steps
	ctx.Given(`^the following expenses exist for "([^"]*)":$`, test.theFollowingExpensesExistFor)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, test.iSendRequestsToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.passwords = make(map[string]string)
	t.userIDs = make(map[string]uuid.UUID)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.previousRefreshToken = ""
	t.currentUserID = uuid.Nil
	t.expenseIDs = nil
	t.timeMock.Reset()

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	startServer()
	t.uri = server.URL
	return nil
}
