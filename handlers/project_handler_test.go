package handlers

import (
	"net/http"
	"testing"

	"github.com/binna/binna-backend/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectHandler_CreateProject(t *testing.T) {
	svc := &mockProjectService{}
	svc.On("CreateProject", mock.Anything, "u-1", mock.MatchedBy(func(in *types.ProjectCreate) bool {
		return in.Name == "Villa in Al Narjis" && in.Budget.Equal(decimal.NewFromInt(850000))
	})).Return(&types.Project{ID: "pr-1", Name: "Villa in Al Narjis", Status: types.ProjectStatusPlanning}, nil)

	h := NewProjectHandler(svc)
	r := newTestRouter("u-1", "")
	r.POST("/api/projects", h.CreateProject)

	w := doJSON(t, r, http.MethodPost, "/api/projects", map[string]any{"name": "Villa in Al Narjis", "budget": "850000"})
	require.Equal(t, http.StatusCreated, w.Code)
	var p types.Project
	decodeBody(t, w, &p)
	assert.Equal(t, types.ProjectStatusPlanning, p.Status)

	w = doJSON(t, r, http.MethodPost, "/api/projects", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "CreateProject", 1)
}

func TestProjectHandler_ListCategoriesIsPublic(t *testing.T) {
	svc := &mockProjectService{}
	svc.On("ListCategories", mock.Anything).Return([]*types.ConstructionCategory{{ID: "c-1", Name: "Concrete", NameAr: "خرسانة"}}, nil)

	h := NewProjectHandler(svc)
	r := newTestRouter("", "")
	r.GET("/api/construction-categories", h.ListCategories)

	w := doJSON(t, r, http.MethodGet, "/api/construction-categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cats []types.ConstructionCategory
	decodeBody(t, w, &cats)
	assert.Equal(t, "Concrete", cats[0].Name)
}
