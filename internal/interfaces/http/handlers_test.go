package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	appcart "github.com/jhoicas/tienda-api/internal/application/cart"
	appcheckout "github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	m := &memUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		m.users[u.ID.Hex()] = u
	}
	return m
}

func (m *memUserRepo) Create(user *entity.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID.Hex()] = user
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByID(id string) (*entity.User, error)       { return m.GetByID(id) }
func (m *memUserRepo) FindByEmail(email string) (*entity.User, error) { return m.GetByEmail(email) }

func (m *memUserRepo) IncrementCartQuantity(userID, productID string) (*entity.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	for i := range u.Cart {
		if u.Cart[i].ProductID == productID {
			u.Cart[i].Quantity++
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) PushCartLine(userID string, line entity.CartLine) (*entity.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	for i := range u.Cart {
		if u.Cart[i].ProductID == line.ProductID {
			return nil, nil
		}
	}
	u.Cart = append(u.Cart, line)
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) PullCartLine(userID, productID string) (*entity.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	kept := make([]entity.CartLine, 0, len(u.Cart))
	for _, l := range u.Cart {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	u.Cart = kept
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) AppendHistoryAndClearCart(userID string, records []entity.PurchaseRecord) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.History = append(u.History, records...)
	u.Cart = []entity.CartLine{}
	return nil
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	m := &memProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		m.products[p.ID.Hex()] = p
	}
	return m
}

func (m *memProductRepo) Create(p *entity.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	m.products[p.ID.Hex()] = p
	return nil
}

func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) GetByIDs(ids []string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memProductRepo) List(limit, skip int, search string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(m.products))
	for _, p := range m.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memProductRepo) IncrementSold(productID string, quantity int) error {
	p, ok := m.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Sold += quantity
	return nil
}

type memPaymentRepo struct {
	payments []*entity.Payment
}

func (m *memPaymentRepo) Create(p *entity.Payment) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	m.payments = append(m.payments, &cp)
	return nil
}

func (m *memPaymentRepo) GetByID(id string) (*entity.Payment, error) {
	for _, p := range m.payments {
		if p.ID.Hex() == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// stubReceiptGenerator evita generar PDFs reales en los tests de handlers.
type stubReceiptGenerator struct{}

func (stubReceiptGenerator) GenerateReceiptPDF(_ context.Context, _ *entity.Payment) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de test con el router completo sobre fakes
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app      *fiber.App
	users    *memUserRepo
	products *memProductRepo
	payments *memPaymentRepo
}

func buildAPIApp(t *testing.T) *testEnv {
	t.Helper()
	users := newMemUserRepo()
	products := newMemProductRepo()
	payments := &memPaymentRepo{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	cartUC := appcart.NewCartUseCase(users, products)
	checkoutUC := appcheckout.NewCheckoutUseCase(users, payments, products, log)
	receiptUC := appcheckout.NewReceiptUseCase(payments, stubReceiptGenerator{})
	productUC := usecase.NewProductUseCase(products)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		CartUC:     cartUC,
		CheckoutUC: checkoutUC,
		ReceiptUC:  receiptUC,
		ProductUC:  productUC,
		UserRepo:   users,
		JWTSecret:  testJWTSecret,
	})
	return &testEnv{app: app, users: users, products: products, payments: payments}
}

func seedStoredUser() *entity.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	return &entity.User{
		ID:           primitive.NewObjectID(),
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Name:         "Ana",
		Role:         entity.RoleUser,
		Cart:         []entity.CartLine{},
		History:      []entity.PurchaseRecord{},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func loginToken(t *testing.T, env *testEnv, email, password string) string {
	t.Helper()
	resp := doJSON(t, env.app, http.MethodPost, "/api/users/login", "", dto.LoginRequest{
		Email: email, Password: password,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de flujo: registro / login / sesión / logout
// ──────────────────────────────────────────────────────────────────────────────

// Registro → login → verificación de sesión, y la respuesta no expone el hash.
func TestFlujo_RegistroLoginYVerificacion(t *testing.T) {
	env := buildAPIApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/api/users/register", "", dto.RegisterRequest{
		Email: "ana@example.com", Password: "secreta123", Name: "Ana",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "registro responde 200 sin cuerpo")

	token := loginToken(t, env, "ana@example.com", "secreta123")

	resp = doJSON(t, env.app, http.MethodGet, "/api/users/auth", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, `"email":"ana@example.com"`)
	assert.Contains(t, body, `"cart":[]`)
	assert.Contains(t, body, `"history":[]`)
	assert.NotContains(t, body, "password", "la proyección nunca incluye el hash")
	assert.NotContains(t, body, "$2a$", "ni rastro del hash bcrypt")
}

func TestLogin_EmailDesconocido_Retorna400(t *testing.T) {
	env := buildAPIApp(t)
	resp := doJSON(t, env.app, http.MethodPost, "/api/users/login", "", dto.LoginRequest{
		Email: "nadie@example.com", Password: "x",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "EMAIL_NOT_FOUND")
}

func TestLogin_PasswordIncorrecto_Retorna400(t *testing.T) {
	env := buildAPIApp(t)
	user := seedStoredUser()
	require.NoError(t, env.users.Create(user))

	resp := doJSON(t, env.app, http.MethodPost, "/api/users/login", "", dto.LoginRequest{
		Email: user.Email, Password: "incorrecta",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "WRONG_PASSWORD")
}

// Logout es un no-op sin estado: dos llamadas seguidas responden 200 y el token
// sigue siendo utilizable hasta su expiración natural.
func TestLogout_DosVecesSigueSiendo200(t *testing.T) {
	env := buildAPIApp(t)
	user := seedStoredUser()
	require.NoError(t, env.users.Create(user))
	token := loginToken(t, env, user.Email, "secreta123")

	for i := 0; i < 2; i++ {
		resp := doJSON(t, env.app, http.MethodPost, "/api/users/logout", token, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	// El token no fue invalidado en el servidor.
	resp := doJSON(t, env.app, http.MethodGet, "/api/users/auth", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de carrito y checkout sobre la API completa
// ──────────────────────────────────────────────────────────────────────────────

func TestCart_AddRetorna201ConCarrito(t *testing.T) {
	env := buildAPIApp(t)
	user := seedStoredUser()
	require.NoError(t, env.users.Create(user))
	token := loginToken(t, env, user.Email, "secreta123")
	pid := primitive.NewObjectID().Hex()

	resp := doJSON(t, env.app, http.MethodPost, "/api/users/cart", token, dto.AddToCartRequest{ProductID: pid})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var cart []entity.CartLine
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cart))
	require.Len(t, cart, 1)
	assert.Equal(t, pid, cart[0].ProductID)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestCart_RemoveDevuelveVistaHidratada(t *testing.T) {
	env := buildAPIApp(t)
	user := seedStoredUser()
	pidA := primitive.NewObjectID()
	pidB := primitive.NewObjectID()
	user.Cart = []entity.CartLine{
		{ProductID: pidA.Hex(), Quantity: 1},
		{ProductID: pidB.Hex(), Quantity: 2},
	}
	require.NoError(t, env.users.Create(user))
	require.NoError(t, env.products.Create(&entity.Product{ID: pidB, Title: "Libro B", Price: 25}))
	token := loginToken(t, env, user.Email, "secreta123")

	resp := doJSON(t, env.app, http.MethodDelete, "/api/users/cart?productId="+pidA.Hex(), token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.CartViewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Cart, 1)
	assert.Equal(t, pidB.Hex(), out.Cart[0].ProductID)
	require.Len(t, out.ProductInfo, 1)
	assert.Equal(t, "Libro B", out.ProductInfo[0].Title)
}

func TestCheckout_FlujoCompletoSobreHTTP(t *testing.T) {
	env := buildAPIApp(t)
	user := seedStoredUser()
	require.NoError(t, env.users.Create(user))
	pid := primitive.NewObjectID()
	require.NoError(t, env.products.Create(&entity.Product{ID: pid, Title: "Libro A", Price: 10}))
	token := loginToken(t, env, user.Email, "secreta123")

	// Añadir al carrito y pagar con cantidad 3 (el detalle lo aporta el cliente).
	resp := doJSON(t, env.app, http.MethodPost, "/api/users/cart", token, dto.AddToCartRequest{ProductID: pid.Hex()})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, env.app, http.MethodPost, "/api/payment", token, dto.CheckoutRequest{
		CartDetail: []dto.CheckoutLine{{Title: "Libro A", ID: pid.Hex(), Price: 10, Quantity: 3}},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Estado final: carrito vacío, history +1, un Payment, sold +3.
	after, err := env.users.GetByID(user.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, after.Cart)
	require.Len(t, after.History, 1)
	assert.Equal(t, 3, after.History[0].Quantity)

	require.Len(t, env.payments.payments, 1)
	product, err := env.products.GetByID(pid.Hex())
	require.NoError(t, err)
	assert.Equal(t, 3, product.Sold)
}

func TestCheckout_SinTokenRetorna401(t *testing.T) {
	env := buildAPIApp(t)
	resp := doJSON(t, env.app, http.MethodPost, "/api/payment", "", dto.CheckoutRequest{
		CartDetail: []dto.CheckoutLine{{Title: "A", ID: "x", Price: 1, Quantity: 1}},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestReceipt_DevuelvePDFDelPropioPago(t *testing.T) {
	env := buildAPIApp(t)
	user := seedStoredUser()
	require.NoError(t, env.users.Create(user))
	token := loginToken(t, env, user.Email, "secreta123")

	payment := &entity.Payment{
		User:    entity.PaymentUser{ID: user.ID.Hex(), Name: user.Name, Email: user.Email},
		Product: []entity.PurchaseRecord{{Name: "Libro A", Price: 10, Quantity: 1}},
	}
	require.NoError(t, env.payments.Create(payment))

	resp := doJSON(t, env.app, http.MethodGet, "/api/payment/"+payment.ID.Hex()+"/receipt", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, readBody(t, resp), "%PDF")
}

func TestReceipt_PagoDeOtroUsuarioRetorna403(t *testing.T) {
	env := buildAPIApp(t)
	user := seedStoredUser()
	require.NoError(t, env.users.Create(user))
	token := loginToken(t, env, user.Email, "secreta123")

	ajeno := &entity.Payment{
		User: entity.PaymentUser{ID: primitive.NewObjectID().Hex(), Name: "Otro", Email: "otro@example.com"},
	}
	require.NoError(t, env.payments.Create(ajeno))

	resp := doJSON(t, env.app, http.MethodGet, "/api/payment/"+ajeno.ID.Hex()+"/receipt", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
