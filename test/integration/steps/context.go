// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/config"
	"github.com/acquisitions-finance/backend/internal/infra/db"
	"github.com/acquisitions-finance/backend/internal/infra/dependency"
	"github.com/acquisitions-finance/backend/internal/integration/persistence/model"
	"github.com/acquisitions-finance/backend/test/integration/mock"
)

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response
	db       *mock.Db

	// ids maps "<kind>:<alias>" to the seeded or created record id.
	ids    map[string]uuid.UUID
	lastID uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

var placeholder = regexp.MustCompile(`\{\{(\w+):([^}]+)\}\}`)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb("acquisitions_finance", map[string]any{
			"transactions":                        &model.TransactionModel{},
			"budgets":                             &model.BudgetModel{},
			"budget_expense_classes":              &model.BudgetExpenseClassModel{},
			"expense_classes":                     &model.ExpenseClassModel{},
			"ledgers":                             &model.LedgerModel{},
			"funds":                               &model.FundModel{},
			"fiscal_years":                        &model.FiscalYearModel{},
			"ledger_fiscal_year_rollover_budgets": &model.RolloverBudgetModel{},
			"system_settings":                     &model.SystemSettingsModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Step(`^the API server is running$`, test.theAPIServerIsRunning)

	// Seed steps
	ctx.Step(`^a fiscal year "([^"]*)" exists with currency "([^"]*)"$`, test.aFiscalYearExistsWithCurrency)
	ctx.Step(`^a ledger "([^"]*)" exists for fiscal year "([^"]*)"$`, test.aLedgerExistsForFiscalYear)
	ctx.Step(`^a fund "([^"]*)" exists in ledger "([^"]*)"$`, test.aFundExistsInLedger)
	ctx.Step(`^the fund "([^"]*)" only allocates to "([^"]*)"$`, test.theFundOnlyAllocatesTo)
	ctx.Step(`^a budget "([^"]*)" exists for fund "([^"]*)" in fiscal year "([^"]*)"$`, test.aBudgetExistsForFundInFiscalYear)
	ctx.Step(`^a budget "([^"]*)" exists for fund "([^"]*)" in fiscal year "([^"]*)" with totals:$`, test.aBudgetExistsWithTotals)
	ctx.Step(`^an expense class "([^"]*)" exists$`, test.anExpenseClassExists)
	ctx.Step(`^the system currency is "([^"]*)"$`, test.theSystemCurrencyIs)
	ctx.Step(`^a rollover budget "([^"]*)" exists for fund "([^"]*)" with values:$`, test.aRolloverBudgetExistsWithValues)
	ctx.Step(`^I remember the response id as "([^"]*)"$`, test.iRememberTheResponseIDAs)

	// Header steps
	ctx.Step(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Step(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Step(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Step(`^the response should not contain "([^"]*)"$`, test.theResponseShouldNotContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.ids = make(map[string]uuid.UUID)
	t.lastID = uuid.Nil

	mock.ClearRedis()
	if t.db != nil {
		return t.db.ClearDB()
	}
	return nil
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			cfg := config.Load()

			redisClient := mock.NewRedis()
			injector := dependency.NewInjector(
				cfg,
				testDB.DbConn,
				redisClient,
				func() bool { return testDB != nil && testDB.DbConn != nil },
				db.RedisHealthChecker(redisClient),
			)
			engine := injector.Router.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// replacePlaceholders swaps {{kind:alias}} markers for remembered ids and
// {{last_id}} for the id of the last created record.
func (t *testContext) replacePlaceholders(content string) string {
	content = placeholder.ReplaceAllStringFunc(content, func(match string) string {
		parts := placeholder.FindStringSubmatch(match)
		if id, ok := t.ids[parts[1]+":"+parts[2]]; ok {
			return id.String()
		}
		return match
	})
	return strings.ReplaceAll(content, "{{last_id}}", t.lastID.String())
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastID = id
		}
	}
	return nil
}

func (t *testContext) iRememberTheResponseIDAs(alias string) error {
	if t.lastID == uuid.Nil {
		return fmt.Errorf("no id captured from the last response: %v", t.response)
	}
	t.ids["tx:"+alias] = t.lastID
	return nil
}
