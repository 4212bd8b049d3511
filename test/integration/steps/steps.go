package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

func (t *testContext) theCurrentDateIs(date string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	t.timeMock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, defaultTestPassword, "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

func (t *testContext) createUser(email, password, name string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := t.timeMock.Now().UTC()
	user := &model.UserModel{
		ID:              uuid.New(),
		Email:           strings.ToLower(email),
		Name:            name,
		PasswordHash:    string(hash),
		TermsAcceptedAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := t.db.DbConn.Create(user).Error; err != nil {
		return err
	}

	t.currentUserID = user.ID
	t.userIDs[user.Email] = user.ID
	t.passwords[user.Email] = password
	return nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	email = strings.ToLower(email)
	password, ok := t.passwords[email]
	if !ok {
		if err := t.createUser(email, defaultTestPassword, "Test User"); err != nil {
			return err
		}
		password = defaultTestPassword
	}

	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	t.accessToken = ""
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %v", t.response.status, t.response.body)
	}
	t.currentUserID = t.userIDs[email]
	return nil
}

// theFollowingExpensesExistFor seeds expenses from a table with the columns
// title, amount, category, date and optionally notes.
func (t *testContext) theFollowingExpensesExistFor(email string, table *godog.Table) error {
	userID, ok := t.userIDs[strings.ToLower(email)]
	if !ok {
		return fmt.Errorf("user %q has not been created", email)
	}
	if len(table.Rows) < 2 {
		return errors.New("expense table needs a header and at least one row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	now := t.timeMock.Now().UTC()
	for i, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for j, cell := range row.Cells {
			values[header[j]] = cell.Value
		}

		amount, err := decimal.NewFromString(values["amount"])
		if err != nil {
			return fmt.Errorf("row %d: invalid amount: %w", i+1, err)
		}
		date, err := time.Parse("2006-01-02", values["date"])
		if err != nil {
			return fmt.Errorf("row %d: invalid date: %w", i+1, err)
		}

		expense := &model.ExpenseModel{
			ID:        uuid.New(),
			UserID:    userID,
			Title:     values["title"],
			Amount:    amount,
			Date:      date,
			Category:  values["category"],
			Notes:     values["notes"],
			CreatedAt: now.Add(time.Duration(i) * time.Second),
			UpdatedAt: now,
		}
		if err := t.db.DbConn.Create(expense).Error; err != nil {
			return err
		}
		t.expenseIDs = append(t.expenseIDs, expense.ID)
	}
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
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

func (t *testContext) iSendRequestsToWithBody(count int, method, path string, body *godog.DocString) error {
	for i := 0; i < count; i++ {
		if err := t.iSendARequestToWithBody(method, path, body); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{previous_refresh_token}}", t.previousRefreshToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())
	if len(t.expenseIDs) > 0 {
		content = strings.ReplaceAll(content, "{{expense_id}}", t.expenseIDs[len(t.expenseIDs)-1].String())
		content = strings.ReplaceAll(content, "{{first_expense_id}}", t.expenseIDs[0].String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

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

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if token, ok := responseBody["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := responseBody["refresh_token"].(string); ok && token != "" {
		t.previousRefreshToken = t.refreshToken
		t.refreshToken = token
	}

	// Expense responses carry an id and a category.
	if idStr, ok := responseBody["id"].(string); ok {
		if _, isExpense := responseBody["category"]; isExpense {
			if id, err := uuid.Parse(idStr); err == nil {
				t.expenseIDs = append(t.expenseIDs, id)
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, count, len(items), items)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

// countRows counts rows of table, soft-deleted ones included, matching criteria.
func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		if value == nil {
			query = query.Where(fmt.Sprintf("%s IS NULL", key))
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object map[string]any, dotSeparatedField string) any {
	var field any = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
