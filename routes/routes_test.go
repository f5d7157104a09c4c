package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/phillip/pet-adoption-go/models"
	routes "github.com/phillip/pet-adoption-go/routes"
	services "github.com/phillip/pet-adoption-go/services"
	store "github.com/phillip/pet-adoption-go/store"
)

type fakeGateway struct {
	intents []models.PaymentIntent
	err     error
}

func (g *fakeGateway) CreatePaymentIntent(_ context.Context, intent models.PaymentIntent) (string, error) {
	g.intents = append(g.intents, intent)
	if g.err != nil {
		return "", g.err
	}
	return "pi_test_secret", nil
}

type fakeImages struct {
	deleted []string
}

func (f *fakeImages) Upload(_ context.Context, file multipart.File) (string, error) {
	b, _ := io.ReadAll(file)
	return fmt.Sprintf("https://res.cloudinary.com/demo/image/upload/v1/pets/%d.jpg", len(b)), nil
}

func (f *fakeImages) Delete(_ context.Context, imageURL string) error {
	f.deleted = append(f.deleted, imageURL)
	return nil
}

type testApp struct {
	router  *gin.Engine
	db      *store.MemoryDatabase
	gateway *fakeGateway
	images  *fakeImages
}

func newTestApp() *testApp {
	gin.SetMode(gin.TestMode)

	db := store.NewMemoryDatabase()
	gw := &fakeGateway{}
	imgs := &fakeImages{}

	r := gin.New()
	routes.SetupRoutes(r, routes.Services{
		Pets:      services.NewPetService(db),
		Campaigns: services.NewCampaignService(db),
		Donations: services.NewDonationService(db),
		Adoptions: services.NewAdoptionService(db, nil),
		Payments:  services.NewPaymentService(gw),
		Images:    imgs,
	})

	return &testApp{router: r, db: db, gateway: gw, images: imgs}
}

func (a *testApp) do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w.Code, w.Body.Bytes()
}

func (a *testApp) count(name string) int {
	return a.db.Collection(name).(*store.MemoryCollection).Len()
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
	return v
}

func TestHTTP_Liveness(t *testing.T) {
	app := newTestApp()
	st, body := app.do(t, http.MethodGet, "/", nil)
	if st != http.StatusOK || string(body) != "Pet Adoption Server is running" {
		t.Fatalf("got %d %q", st, body)
	}
}

func TestHTTP_AddAndGetPet(t *testing.T) {
	app := newTestApp()

	st, body := app.do(t, http.MethodPost, "/pets", map[string]any{
		"name": "Rex", "category": "dog", "creatorEmail": "a@b.com",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", st, body)
	}
	created := decode[struct {
		Message    string `json:"message"`
		InsertedID string `json:"insertedId"`
	}](t, body)
	if created.Message == "" || created.InsertedID == "" {
		t.Fatalf("unexpected body %s", body)
	}

	st, body = app.do(t, http.MethodGet, "/pets/"+created.InsertedID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, body)
	}
	pet := decode[map[string]any](t, body)
	if pet["adopted"] != false || pet["_id"] != created.InsertedID || pet["name"] != "Rex" {
		t.Fatalf("unexpected pet %v", pet)
	}
	createdAt, _ := pet["createdAt"].(string)
	if _, err := time.Parse(time.RFC3339, createdAt); err != nil {
		t.Fatalf("createdAt %q is not a timestamp: %v", createdAt, err)
	}
}

func TestHTTP_CreatorEmailRequired(t *testing.T) {
	app := newTestApp()

	st, body := app.do(t, http.MethodPost, "/pets", map[string]any{"name": "Rex"})
	if st != http.StatusBadRequest {
		t.Fatalf("pets: expected 400, got %d", st)
	}
	if e := decode[map[string]string](t, body); e["error"] != "creatorEmail is required" {
		t.Fatalf("pets: unexpected body %s", body)
	}

	st, _ = app.do(t, http.MethodPost, "/donation-campaigns", map[string]any{"petName": "Rex"})
	if st != http.StatusBadRequest {
		t.Fatalf("campaigns: expected 400, got %d", st)
	}

	if app.count(models.PetCollection) != 0 || app.count(models.CampaignCollection) != 0 {
		t.Fatal("rejected requests must not persist anything")
	}
}

func TestHTTP_ListPetsPaginates(t *testing.T) {
	app := newTestApp()

	for i := 0; i < 8; i++ {
		st, _ := app.do(t, http.MethodPost, "/pets", map[string]any{
			"name": fmt.Sprintf("Buddy %d", i), "category": "dog", "creatorEmail": "a@b.com",
		})
		if st != http.StatusCreated {
			t.Fatalf("seed pet %d: %d", i, st)
		}
	}
	_, body := app.do(t, http.MethodPost, "/pets", map[string]any{"name": "Kitty", "category": "cat", "creatorEmail": "a@b.com"})
	kitty := decode[map[string]string](t, body)["insertedId"]
	if st, _ := app.do(t, http.MethodPut, "/pets/"+kitty, map[string]any{"adopted": true}); st != http.StatusOK {
		t.Fatalf("adopt kitty: %d", st)
	}

	type page struct {
		Pets    []map[string]any `json:"pets"`
		HasMore bool             `json:"hasMore"`
	}

	st, body := app.do(t, http.MethodGet, "/pets", nil)
	if st != http.StatusOK {
		t.Fatalf("list: %d %s", st, body)
	}
	first := decode[page](t, body)
	if len(first.Pets) != 6 || !first.HasMore {
		t.Fatalf("default page: %d pets hasMore=%v", len(first.Pets), first.HasMore)
	}

	_, body = app.do(t, http.MethodGet, "/pets?page=2&limit=6", nil)
	second := decode[page](t, body)
	if len(second.Pets) != 2 || second.HasMore {
		t.Fatalf("second page: %d pets hasMore=%v", len(second.Pets), second.HasMore)
	}

	_, body = app.do(t, http.MethodGet, "/pets?category=cat", nil)
	if cats := decode[page](t, body); len(cats.Pets) != 0 {
		t.Fatalf("adopted cat must not be listed: %v", cats.Pets)
	}

	_, body = app.do(t, http.MethodGet, "/pets?search=BUDDY%207", nil)
	if found := decode[page](t, body); len(found.Pets) != 1 || found.Pets[0]["name"] != "Buddy 7" {
		t.Fatalf("search: %v", found.Pets)
	}

	for _, q := range []string{"?page=0", "?page=abc", "?limit=0"} {
		if st, _ := app.do(t, http.MethodGet, "/pets"+q, nil); st != http.StatusBadRequest {
			t.Fatalf("GET /pets%s: expected 400, got %d", q, st)
		}
	}

	st, body = app.do(t, http.MethodGet, "/my-pets?email=a@b.com", nil)
	if mine := decode[[]map[string]any](t, body); st != http.StatusOK || len(mine) != 9 {
		t.Fatalf("my pets: %d, %d pets", st, len(mine))
	}
	if st, _ := app.do(t, http.MethodGet, "/my-pets", nil); st != http.StatusBadRequest {
		t.Fatalf("my pets without email: expected 400, got %d", st)
	}
}

func TestHTTP_PetUpdateAndDeleteNotFound(t *testing.T) {
	app := newTestApp()
	_, _ = app.do(t, http.MethodPost, "/pets", map[string]any{"name": "Rex", "creatorEmail": "a@b.com"})
	missing := primitive.NewObjectID().Hex()

	st, body := app.do(t, http.MethodPut, "/pets/"+missing, map[string]any{"name": "x"})
	if st != http.StatusNotFound || decode[map[string]string](t, body)["message"] != "Pet not found" {
		t.Fatalf("update missing: %d %s", st, body)
	}
	if st, _ := app.do(t, http.MethodPut, "/pets/"+missing, map[string]any{}); st != http.StatusNotFound {
		t.Fatalf("empty update of missing pet: expected 404, got %d", st)
	}

	for _, id := range []string{missing, "not-an-object-id"} {
		if st, _ := app.do(t, http.MethodDelete, "/pet/"+id, nil); st != http.StatusNotFound {
			t.Fatalf("delete %s: expected 404, got %d", id, st)
		}
	}
	if app.count(models.PetCollection) != 1 {
		t.Fatal("failed deletes must leave the collection unchanged")
	}
}

func TestHTTP_CampaignLifecycle(t *testing.T) {
	app := newTestApp()

	st, body := app.do(t, http.MethodPost, "/donation-campaigns", map[string]any{
		"petName": "Milo", "maxDonation": 500, "creatorEmail": "a@b.com",
	})
	if st != http.StatusCreated {
		t.Fatalf("create: %d %s", st, body)
	}
	ack := decode[struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}](t, body)
	if !ack.Acknowledged || ack.InsertedID == "" {
		t.Fatalf("unexpected ack %s", body)
	}
	id := ack.InsertedID

	st, body = app.do(t, http.MethodGet, "/donation-campaigns/"+id, nil)
	if st != http.StatusOK {
		t.Fatalf("get: %d", st)
	}
	if c := decode[map[string]any](t, body); c["date"] == nil || c["creatorEmail"] != "a@b.com" {
		t.Fatalf("unexpected campaign %s", body)
	}

	type updateResp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	st, body = app.do(t, http.MethodPut, "/donation-campaigns/"+id, map[string]any{"maxDonation": 800})
	if r := decode[updateResp](t, body); st != http.StatusOK || !r.Success {
		t.Fatalf("update: %d %s", st, body)
	}

	st, body = app.do(t, http.MethodPut, "/donation-campaigns/"+id, map[string]any{"maxDonation": 800})
	if r := decode[updateResp](t, body); st != http.StatusBadRequest || r.Success || r.Message != "No changes were made. Possibly identical data." {
		t.Fatalf("identical update: %d %s", st, body)
	}

	st, _ = app.do(t, http.MethodPut, "/donation-campaigns/"+primitive.NewObjectID().Hex(), map[string]any{"maxDonation": 800})
	if st != http.StatusNotFound {
		t.Fatalf("update missing: expected 404, got %d", st)
	}
	st, body = app.do(t, http.MethodPut, "/donation-campaigns/"+primitive.NewObjectID().Hex(), map[string]any{})
	if r := decode[updateResp](t, body); st != http.StatusNotFound || r.Message != "Donation campaign not found." {
		t.Fatalf("empty update of missing campaign: %d %s", st, body)
	}
	st, body = app.do(t, http.MethodPut, "/donation-campaigns/"+id, map[string]any{})
	if r := decode[updateResp](t, body); st != http.StatusBadRequest || r.Message != "No changes were made. Possibly identical data." {
		t.Fatalf("empty update: %d %s", st, body)
	}

	st, body = app.do(t, http.MethodGet, "/my-campaigns?email=a@b.com", nil)
	if mine := decode[[]map[string]any](t, body); st != http.StatusOK || len(mine) != 1 {
		t.Fatalf("my campaigns: %d %s", st, body)
	}
	if st, _ := app.do(t, http.MethodGet, "/my-campaigns", nil); st != http.StatusBadRequest {
		t.Fatalf("my campaigns without email: expected 400, got %d", st)
	}

	if st, _ := app.do(t, http.MethodDelete, "/campaigns/"+primitive.NewObjectID().Hex(), nil); st != http.StatusNotFound {
		t.Fatalf("delete missing: expected 404, got %d", st)
	}
	if app.count(models.CampaignCollection) != 1 {
		t.Fatal("failed delete changed the collection")
	}

	st, body = app.do(t, http.MethodDelete, "/campaigns/"+id, nil)
	del := decode[struct {
		Message      string `json:"message"`
		DeletedCount int    `json:"deletedCount"`
	}](t, body)
	if st != http.StatusOK || del.DeletedCount != 1 {
		t.Fatalf("delete: %d %s", st, body)
	}
	if st, _ := app.do(t, http.MethodGet, "/donation-campaigns/"+id, nil); st != http.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", st)
	}
}

func TestHTTP_ListCampaignsZeroBased(t *testing.T) {
	app := newTestApp()
	for i := 0; i < 7; i++ {
		_, _ = app.do(t, http.MethodPost, "/donation-campaigns", map[string]any{"petName": fmt.Sprint(i), "creatorEmail": "a@b.com"})
	}

	type page struct {
		Campaigns []map[string]any `json:"campaigns"`
		HasMore   bool             `json:"hasMore"`
	}

	_, body := app.do(t, http.MethodGet, "/donation-campaigns", nil)
	if p := decode[page](t, body); len(p.Campaigns) != 6 || !p.HasMore {
		t.Fatalf("page 0: %d hasMore=%v", len(p.Campaigns), p.HasMore)
	}
	_, body = app.do(t, http.MethodGet, "/donation-campaigns?page=1", nil)
	if p := decode[page](t, body); len(p.Campaigns) != 1 || p.HasMore {
		t.Fatalf("page 1: %d hasMore=%v", len(p.Campaigns), p.HasMore)
	}
	_, body = app.do(t, http.MethodGet, "/donation-campaigns?email=nobody@b.com", nil)
	if p := decode[page](t, body); p.Campaigns == nil || len(p.Campaigns) != 0 {
		t.Fatalf("unknown creator should give an empty list, got %s", body)
	}
}

func TestHTTP_AppendOnlyRecords(t *testing.T) {
	app := newTestApp()

	st, body := app.do(t, http.MethodPost, "/donations", map[string]any{"campaignId": "x", "amount": 20})
	if st != http.StatusOK || decode[map[string]any](t, body)["acknowledged"] != true {
		t.Fatalf("donation: %d %s", st, body)
	}

	st, body = app.do(t, http.MethodPost, "/adoptions", map[string]any{"petId": "x", "phone": "555"})
	if st != http.StatusOK || decode[map[string]any](t, body)["insertedId"] == "" {
		t.Fatalf("adoption: %d %s", st, body)
	}

	req := httptest.NewRequest(http.MethodPost, "/adoptions", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed adoption: expected 400, got %d", w.Code)
	}

	if app.count(models.DonationCollection) != 1 || app.count(models.AdoptionCollection) != 1 {
		t.Fatal("unexpected record counts")
	}
	for _, path := range []string{"/donations", "/adoptions"} {
		if st, _ := app.do(t, http.MethodGet, path, nil); st != http.StatusNotFound {
			t.Fatalf("GET %s should not exist, got %d", path, st)
		}
	}
}

func TestHTTP_CreatePaymentIntent(t *testing.T) {
	app := newTestApp()

	st, body := app.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"amount": 20})
	if st != http.StatusOK || decode[map[string]string](t, body)["clientSecret"] != "pi_test_secret" {
		t.Fatalf("intent: %d %s", st, body)
	}
	got := app.gateway.intents[0]
	if got.Amount != 2000 || got.Currency != "usd" || got.PaymentMethodTypes[0] != "card" {
		t.Fatalf("unexpected intent %+v", got)
	}

	if st, _ := app.do(t, http.MethodPost, "/create-payment-intent", map[string]any{}); st != http.StatusBadRequest {
		t.Fatalf("missing amount: expected 400, got %d", st)
	}

	app.gateway.err = errors.New("api_connection_error")
	st, body = app.do(t, http.MethodPost, "/create-payment-intent", map[string]any{"amount": 5})
	if st != http.StatusInternalServerError || decode[map[string]string](t, body)["error"] != "Failed to create payment intent" {
		t.Fatalf("gateway failure: %d %s", st, body)
	}
}

func TestHTTP_ImageUpload(t *testing.T) {
	app := newTestApp()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("image", "rex.jpg")
	_, _ = fw.Write([]byte("jpegbytes"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", w.Code, w.Body.String())
	}
	url := decode[map[string]string](t, w.Body.Bytes())["url"]
	if url != "https://res.cloudinary.com/demo/image/upload/v1/pets/9.jpg" {
		t.Fatalf("unexpected url %q", url)
	}

	if st, _ := app.do(t, http.MethodPost, "/upload-image", map[string]any{}); st != http.StatusBadRequest {
		t.Fatalf("upload without file: expected 400, got %d", st)
	}

	if st, _ := app.do(t, http.MethodDelete, "/upload-image?url="+url, nil); st != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", st)
	}
	if len(app.images.deleted) != 1 || app.images.deleted[0] != url {
		t.Fatalf("unexpected deletes %v", app.images.deleted)
	}
}
