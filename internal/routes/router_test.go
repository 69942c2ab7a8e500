package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"inventory-system/internal/alerts"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/filter"
	"inventory-system/internal/reports"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
	"inventory-system/pkg/validation"
)

type RouterTestSuite struct {
	suite.Suite
	Echo       *echo.Echo
	DB         *stubPinger
	Equipment  *stubEquipment
	Documents  *stubDocuments
	Alerts     *stubAlerts
	AdminToken string
	UserToken  string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	nop := zap.NewNop()
	jwtSvc := service.NewJWTService("router-secret", time.Hour, 2*time.Hour, nop)

	var err error
	s.AdminToken, _, err = jwtSvc.GenerateTokens(1, string(constants.RoleAdmin))
	s.Require().NoError(err)
	s.UserToken, _, err = jwtSvc.GenerateTokens(2, string(constants.RoleUser))
	s.Require().NoError(err)

	s.DB = &stubPinger{}
	s.Equipment = &stubEquipment{}
	s.Documents = &stubDocuments{dir: s.T().TempDir()}
	s.Alerts = &stubAlerts{}

	e := echo.New()
	e.Validator = validation.New()
	InitRouter(e, Services{
		Auth:         stubAuth{},
		Equipment:    s.Equipment,
		Import:       stubImport{},
		Documents:    s.Documents,
		Calibrations: stubCalibrations{},
		Alerts:       s.Alerts,
		Reports:      stubReports{},
	}, jwtSvc, s.DB, &Loggers{Main: nop, Auth: nop, Equipment: nop, Report: nop})
	s.Echo = e
}

func (s *RouterTestSuite) do(method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) doJSON(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	b, err := json.Marshal(payload)
	s.Require().NoError(err)
	return s.do(method, path, token, bytes.NewReader(b), echo.MIMEApplicationJSON)
}

func (s *RouterTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", nil, "")
	s.Equal(http.StatusOK, rec.Code)

	s.DB.err = errors.New("connection refused")
	rec = s.do(http.MethodGet, "/health", "", nil, "")
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *RouterTestSuite) TestLogin() {
	rec := s.doJSON(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Email: "admin@lab.test", Password: "secret-pass"})
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"access_token":"access"`)

	rec = s.doJSON(http.MethodPost, "/api/auth/login", "", dto.LoginDTO{Email: "not-an-email", Password: "secret-pass"})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestEquipmentAccess() {
	rec := s.do(http.MethodGet, "/api/equipment", "", nil, "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/equipment?categoria=field&marca=acme", s.UserToken, nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("field", s.Equipment.lastFilter.Category)
	s.Equal("acme", s.Equipment.lastFilter.Brand)

	payload := map[string]interface{}{"name": "Balance", "category": "field", "stock": 2}
	rec = s.doJSON(http.MethodPost, "/api/equipment", s.UserToken, payload)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.doJSON(http.MethodPost, "/api/equipment", s.AdminToken, payload)
	s.Equal(http.StatusCreated, rec.Code)

	rec = s.doJSON(http.MethodPost, "/api/equipment", s.AdminToken, map[string]interface{}{"name": "Balance", "category": "kitchen", "stock": 2})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestEquipmentErrors() {
	rec := s.do(http.MethodGet, "/api/equipment/abc", s.UserToken, nil, "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/equipment/99", s.UserToken, nil, "")
	s.Equal(http.StatusNotFound, rec.Code)

	s.Equipment.err = apperrors.ErrStoreUnavailable
	rec = s.do(http.MethodGet, "/api/equipment", s.UserToken, nil, "")
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *RouterTestSuite) TestCalibrations() {
	rec := s.doJSON(http.MethodPost, "/api/equipment/1/calibrations", s.AdminToken, dto.CreateCalibrationDTO{CalibratedOn: "2026-01-10"})
	s.Equal(http.StatusCreated, rec.Code)

	rec = s.doJSON(http.MethodPost, "/api/equipment/1/calibrations", s.AdminToken, dto.CreateCalibrationDTO{CalibratedOn: "10/01/2026"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/equipment/1/calibrations", s.UserToken, nil, "")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RouterTestSuite) TestAlerts() {
	rec := s.do(http.MethodGet, "/api/alerts", s.UserToken, nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"calibration_due"`)

	rec = s.do(http.MethodGet, "/api/alerts/bogus", s.UserToken, nil, "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/alerts/calibration-due/ack", s.UserToken, nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(uint64(2), s.Alerts.ackedBy)
}

func (s *RouterTestSuite) TestReports() {
	rec := s.do(http.MethodGet, "/api/reports/inventory/xlsx", s.UserToken, nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(reports.ContentTypeXLSX, rec.Header().Get(echo.HeaderContentType))
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), `filename="inventory.xlsx"`)

	rec = s.do(http.MethodGet, "/api/reports/photos/pdf", s.UserToken, nil, "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/reports/payroll/xlsx", s.UserToken, nil, "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/reports/photos/zip", s.UserToken, nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(reports.ContentTypeZIP, rec.Header().Get(echo.HeaderContentType))
	s.Equal("zip-bytes", rec.Body.String())
}

func (s *RouterTestSuite) TestDocumentUploadAndDownload() {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	s.Require().NoError(w.WriteField("type", "certificate"))
	s.Require().NoError(w.WriteField("expiration_date", "2027-01-01"))
	part, err := w.CreateFormFile("file", "cert.pdf")
	s.Require().NoError(err)
	_, err = part.Write([]byte("%PDF-1.4 test"))
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	rec := s.do(http.MethodPost, "/api/documents/5", s.AdminToken, bytes.NewReader(body.Bytes()), w.FormDataContentType())
	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Equal("cert.pdf", s.Documents.uploadedName)
	s.Equal(uint64(5), s.Documents.uploadedFor)
	s.Equal("certificate", s.Documents.uploadedType)

	rec = s.do(http.MethodGet, "/api/documents/1/download", s.UserToken, nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), `filename="cert.pdf"`)
	s.True(strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "application/pdf"))
	s.Equal("%PDF-1.4 test", rec.Body.String())

	rec = s.do(http.MethodGet, "/api/documents/2/download", s.UserToken, nil, "")
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/documents/1", s.UserToken, nil, "")
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterTestSuite) TestStoredFilesRequireToken() {
	rec := s.do(http.MethodGet, "/api/documents/1/download", "", nil, "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	for _, path := range []string{"/uploads/stored.pdf", "/uploads/certificates/stored.pdf"} {
		rec = s.do(http.MethodGet, path, "", nil, "")
		s.Equal(http.StatusNotFound, rec.Code, path)
		s.NotContains(rec.Body.String(), "%PDF", path)
	}
}

// stubs

type stubPinger struct{ err error }

func (p *stubPinger) Ping(context.Context) error { return p.err }

type stubAuth struct{}

func (stubAuth) Login(_ context.Context, p dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	return &dto.AuthResponseDTO{AccessToken: "access", RefreshToken: "refresh", User: dto.UserPublicDTO{Email: p.Email}}, nil
}

func (stubAuth) Refresh(context.Context, dto.RefreshTokenDTO) (*dto.AuthResponseDTO, error) {
	return nil, apperrors.ErrTokenIsNotRefresh
}

type stubEquipment struct {
	lastFilter filter.EquipmentFilter
	err        error
}

func (s *stubEquipment) List(_ context.Context, f filter.EquipmentFilter) ([]dto.EquipmentDTO, error) {
	s.lastFilter = f
	if s.err != nil {
		return nil, s.err
	}
	return []dto.EquipmentDTO{{ID: 1, Name: "Balance"}}, nil
}

func (s *stubEquipment) Find(_ context.Context, id uint64) (*dto.EquipmentDTO, error) {
	if id != 1 {
		return nil, apperrors.ErrNotFound
	}
	return &dto.EquipmentDTO{ID: 1, Name: "Balance"}, nil
}

func (s *stubEquipment) Create(_ context.Context, p dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	return &dto.EquipmentDTO{ID: 2, Name: p.Name, Category: p.Category}, nil
}

func (s *stubEquipment) Update(_ context.Context, id uint64, p dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	return &dto.EquipmentDTO{ID: id, Name: p.Name}, nil
}

func (s *stubEquipment) Delete(context.Context, uint64) error { return nil }

type stubImport struct{}

func (stubImport) Import(context.Context, io.ReadSeeker, int64) (*dto.ImportResultDTO, error) {
	return &dto.ImportResultDTO{}, nil
}

type stubDocuments struct {
	dir          string
	uploadedFor  uint64
	uploadedName string
	uploadedType string
}

func (s *stubDocuments) List(context.Context, *uint64) ([]dto.DocumentDTO, error) {
	return []dto.DocumentDTO{}, nil
}

func (s *stubDocuments) Upload(_ context.Context, equipmentID uint64, p dto.UploadDocumentDTO, file io.ReadSeeker, _ int64, originalName string) (*dto.DocumentDTO, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(s.dir, "stored.pdf"), content, 0o644); err != nil {
		return nil, err
	}
	s.uploadedFor, s.uploadedName, s.uploadedType = equipmentID, originalName, p.Type
	return &dto.DocumentDTO{ID: 1, OriginalName: originalName, Type: p.Type}, nil
}

func (s *stubDocuments) Open(_ context.Context, id uint64) (*entities.Document, *os.File, error) {
	if id != 1 {
		return nil, nil, apperrors.ErrFileMissing
	}
	f, err := os.Open(filepath.Join(s.dir, "stored.pdf"))
	if err != nil {
		return nil, nil, apperrors.ErrFileMissing
	}
	return &entities.Document{ID: 1, OriginalName: "cert.pdf"}, f, nil
}

func (s *stubDocuments) Delete(context.Context, uint64) error { return nil }

type stubCalibrations struct{}

func (stubCalibrations) List(context.Context, uint64) ([]dto.CalibrationDTO, error) {
	return []dto.CalibrationDTO{}, nil
}

func (stubCalibrations) Record(_ context.Context, id uint64, p dto.CreateCalibrationDTO) (*dto.CalibrationDTO, error) {
	return &dto.CalibrationDTO{ID: 1, EquipmentID: id, CalibratedOn: p.CalibratedOn}, nil
}

type stubAlerts struct{ ackedBy uint64 }

func (s *stubAlerts) Evaluate(context.Context) (*alerts.Result, error) {
	return &alerts.Result{}, nil
}

func (s *stubAlerts) EvaluateKind(_ context.Context, kind string) (interface{}, error) {
	if !constants.AlertKind(kind).Valid() {
		return nil, apperrors.SelectorError("alert kind", kind)
	}
	return []alerts.CalibrationDue{}, nil
}

func (s *stubAlerts) Acknowledge(_ context.Context, kind string, userID uint64) error {
	s.ackedBy = userID
	return nil
}

type stubReports struct{}

func (stubReports) Generate(_ context.Context, kind reports.Kind, format reports.Format, _ filter.EquipmentFilter) (*reports.Artifact, error) {
	return &reports.Artifact{FileName: string(kind) + "." + string(format), ContentType: reports.ContentType(format), Body: []byte("report")}, nil
}

func (stubReports) StreamPhotos(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "zip-bytes")
	return err
}
