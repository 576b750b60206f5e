package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelease/hostelease/internal/app/models"
	"github.com/hostelease/hostelease/internal/app/models/dto"
	"github.com/hostelease/hostelease/internal/pkg/apperrors"
	"github.com/hostelease/hostelease/internal/pkg/helpers"
)

// stubComplaintService backs the handler tests with canned data.
type stubComplaintService struct {
	complaints map[int64]*models.Complaint
	nextID     int64
}

func newStubComplaintService() *stubComplaintService {
	return &stubComplaintService{complaints: map[int64]*models.Complaint{}, nextID: 1}
}

func (s *stubComplaintService) CreateComplaint(_ context.Context, req *dto.CreateComplaintRequest) (*models.Complaint, error) {
	complaint := &models.Complaint{
		ID:          s.nextID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      models.ComplaintPending,
		StudentID:   req.StudentID,
		RoomNumber:  req.RoomNumber,
	}
	s.complaints[complaint.ID] = complaint
	s.nextID++
	return complaint, nil
}

func (s *stubComplaintService) GetComplaintByID(_ context.Context, id int64) (*models.Complaint, error) {
	complaint, ok := s.complaints[id]
	if !ok {
		return nil, apperrors.ErrComplaintNotFound
	}
	return complaint, nil
}

func (s *stubComplaintService) GetAllComplaints(_ context.Context, filter *dto.ComplaintFilterRequest) ([]models.Complaint, dto.PaginationInfo, error) {
	var all []models.Complaint
	for i := int64(1); i < s.nextID; i++ {
		if c, ok := s.complaints[i]; ok {
			all = append(all, *c)
		}
	}
	total := len(all)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return all[start:end], helpers.NewPaginationInfo(int64(total), filter.Page, filter.Limit), nil
}

func (s *stubComplaintService) UpdateStatus(_ context.Context, id int64, req *dto.UpdateComplaintStatusRequest) (*models.Complaint, error) {
	complaint, ok := s.complaints[id]
	if !ok {
		return nil, apperrors.ErrComplaintNotFound
	}
	if complaint.Status == models.ComplaintResolved || complaint.Status == models.ComplaintRejected {
		return nil, fmt.Errorf("%w: complaint %s -> %s", apperrors.ErrInvalidTransition, complaint.Status, req.Status)
	}
	complaint.Status = models.ComplaintStatus(req.Status)
	return complaint, nil
}

func (s *stubComplaintService) DeleteComplaint(_ context.Context, id int64) error {
	if _, ok := s.complaints[id]; !ok {
		return apperrors.ErrComplaintNotFound
	}
	delete(s.complaints, id)
	return nil
}

func newComplaintTestRouter() (*gin.Engine, *stubComplaintService) {
	gin.SetMode(gin.TestMode)
	stub := newStubComplaintService()
	ctrl := NewComplaintController(stub)

	router := gin.New()
	router.POST("/complaints", ctrl.CreateComplaint)
	router.GET("/complaints", ctrl.GetAllComplaints)
	router.GET("/complaints/:id", ctrl.GetComplaint)
	router.PUT("/complaints/:id/status", ctrl.UpdateStatus)
	router.DELETE("/complaints/:id", ctrl.DeleteComplaint)
	return router, stub
}

func postJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validComplaintBody() map[string]interface{} {
	return map[string]interface{}{
		"title":       "Broken fan",
		"description": "Ceiling fan stopped working",
		"category":    "MAINTENANCE",
		"studentId":   1,
		"roomNumber":  "R101",
	}
}

func TestCreateComplaintHandler(t *testing.T) {
	router, _ := newComplaintTestRouter()

	w := postJSON(router, http.MethodPost, "/complaints", validComplaintBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, _ := json.Marshal(resp.Data)
	var complaint models.Complaint
	require.NoError(t, json.Unmarshal(data, &complaint))
	assert.Equal(t, models.ComplaintPending, complaint.Status)
}

func TestCreateComplaintHandlerRejectsMissingFields(t *testing.T) {
	router, _ := newComplaintTestRouter()

	body := validComplaintBody()
	delete(body, "title")
	w := postJSON(router, http.MethodPost, "/complaints", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestGetAllComplaintsHandlerPagination(t *testing.T) {
	router, _ := newComplaintTestRouter()

	for i := 0; i < 15; i++ {
		w := postJSON(router, http.MethodPost, "/complaints", validComplaintBody())
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := postJSON(router, http.MethodGet, "/complaints?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, int64(15), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)

	items, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 10)
}

func TestGetComplaintHandlerErrors(t *testing.T) {
	router, _ := newComplaintTestRouter()

	w := postJSON(router, http.MethodGet, "/complaints/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(router, http.MethodGet, "/complaints/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateComplaintStatusHandlerConflict(t *testing.T) {
	router, stub := newComplaintTestRouter()

	w := postJSON(router, http.MethodPost, "/complaints", validComplaintBody())
	require.Equal(t, http.StatusCreated, w.Code)

	stub.complaints[1].Status = models.ComplaintResolved

	w = postJSON(router, http.MethodPut, "/complaints/1/status", map[string]interface{}{
		"status": "IN_PROGRESS",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestDeleteComplaintHandler(t *testing.T) {
	router, _ := newComplaintTestRouter()

	w := postJSON(router, http.MethodPost, "/complaints", validComplaintBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, http.MethodDelete, "/complaints/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	w = postJSON(router, http.MethodDelete, "/complaints/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
