package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/business-manager/database"
	"github.com/yeremiapane/business-manager/metrics"
	"github.com/yeremiapane/business-manager/models"
	"github.com/yeremiapane/business-manager/realtime"
	"github.com/yeremiapane/business-manager/repository"
	"github.com/yeremiapane/business-manager/router"
	"github.com/yeremiapane/business-manager/services"
	"github.com/yeremiapane/business-manager/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testApp struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *utils.TokenManager
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Details string          `json:"details"`
	Data    json.RawMessage `json:"data"`
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger("error")

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	tokens := utils.NewTokenManager("test-secret", time.Hour)
	m := metrics.New()
	hub := realtime.NewHub()
	r := router.SetupRouter(router.Dependencies{
		DB:                 db,
		Tokens:             tokens,
		Orders:             services.NewOrderService(repository.NewOrderRepository(db), hub, m),
		Hub:                hub,
		Metrics:            m,
		CORSOrigins:        []string{"*"},
		LoginRatePerMinute: 100,
	})

	return &testApp{db: db, router: r, tokens: tokens}
}

func (a *testApp) token(t *testing.T, role string) string {
	t.Helper()
	token, err := a.tokens.GenerateToken(1, role+"-user", role)
	require.NoError(t, err)
	return token
}

func (a *testApp) createUser(t *testing.T, username, password, role string, enabled bool) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Username: username, Password: string(hash), Name: username, Role: role, Enabled: enabled}
	require.NoError(t, a.db.Create(&user).Error)
	return user
}

// do sends body as JSON with a bearer token for role; an empty role sends no
// token.
func (a *testApp) do(t *testing.T, method, path, role string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+a.token(t, role))
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out), string(raw))
}

type seeded struct {
	customer models.Customer
	company  models.Company
	shirt    models.Product
	hat      models.Product
	color    models.Option
}

func (a *testApp) seed(t *testing.T) seeded {
	t.Helper()
	states := `["red","blue"]`
	s := seeded{
		company: models.Company{Name: "Acme"},
		shirt:   models.Product{Name: "Shirt"},
		hat:     models.Product{Name: "Hat"},
		color:   models.Option{Title: "Color", Model: models.OptionModelMultiState, States: &states, IsActive: true},
	}
	require.NoError(t, a.db.Create(&s.company).Error)
	s.customer = models.Customer{Name: "Ali", CompanyID: &s.company.ID}
	require.NoError(t, a.db.Create(&s.customer).Error)
	require.NoError(t, a.db.Create(&s.shirt).Error)
	require.NoError(t, a.db.Create(&s.hat).Error)
	require.NoError(t, a.db.Create(&s.color).Error)
	return s
}

func (s seeded) orderBody(status string, productID uint) map[string]interface{} {
	body := map[string]interface{}{
		"customerId":  s.customer.ID,
		"companyId":   s.company.ID,
		"description": "first",
		"orderItems": []map[string]interface{}{{
			"productId": productID,
			"quantity":  2,
			"orderItemProductOptions": []map[string]interface{}{
				{"productOptionId": s.color.ID, "selection": "red"},
			},
		}},
	}
	if status != "" {
		body["status"] = status
	}
	return body
}
