//go:build e2e

package ledger_test

import (
	"fmt"
	"net/http"
	"testing"

	"studio-ops/internal/domain/user"
	"studio-ops/internal/handler/dto/request"
	"studio-ops/internal/handler/dto/response"
	"studio-ops/tests/common/authtest"
	"studio-ops/tests/common/dbtest"
	"studio-ops/tests/common/httptest"
	"studio-ops/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	clientCreditURL   = "/api/clients/%s/credit"
	assignmentURL     = "/api/clients/%s/assignment"
	assignPreviewURL  = "/api/clients/%s/assignment/preview"
	assignmentsURL    = "/api/clients/%s/assignments"
	submissionsURL    = "/api/submissions"
	submissionURL     = "/api/submissions/%s"
	submissionStatURL = "/api/submissions/%s/status"
)

type LedgerSuite struct {
	e2e.SharedSuite
}

func TestLedgerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) assignPackage(t *testing.T, token string, clientID, packageID uuid.UUID) {
	t.Helper()
	reqBody := request.AssignPackageRequest{
		PackageTemplateID: &packageID,
		PaymentStatus:     "paid",
	}
	w := httptest.PerformRequest(t, s.Router, http.MethodPut,
		fmt.Sprintf(assignmentURL, clientID), reqBody, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (s *LedgerSuite) createSubmission(t *testing.T, token string, clientID uuid.UUID, title string, images int) uuid.UUID {
	t.Helper()
	reqBody := request.CreateSubmissionRequest{
		ClientID:   clientID,
		Title:      title,
		ImageCount: images,
	}
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, submissionsURL, reqBody, token,
		map[string]string{"Idempotency-Key": uuid.New().String()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	id, err := uuid.Parse(created["id"].(string))
	require.NoError(t, err)
	return id
}

func (s *LedgerSuite) getCredit(t *testing.T, token string, clientID uuid.UUID) response.ClientCreditResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet,
		fmt.Sprintf(clientCreditURL, clientID), nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var credit response.ClientCreditResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &credit))
	return credit
}

// =============================================================================
// TestAssignPackage - package assignment and the ledger triple
// =============================================================================

func (s *LedgerSuite) TestAssignPackage() {
	s.Run("Normal case: assigning a package grants the full amount", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "op1@example.com", string(user.RoleOperator))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		images := 20
		packageID := dbtest.CreateTestPackage(t, s.DB, "Standard Plan", 10, &images)

		s.assignPackage(t, token, clientID, packageID)

		credit := s.getCredit(t, token, clientID)
		require.NotNil(t, credit.State)
		require.Equal(t, int32(10), credit.State.RemainingServings)
		require.NotNil(t, credit.State.RemainingImages)
		require.Equal(t, int32(20), *credit.State.RemainingImages)
		require.NotNil(t, credit.ActiveAssignment)
		require.Equal(t, int32(0), credit.ActiveAssignment.ConsumedAtAssignment)
	})

	s.Run("Normal case: switching packages refreshes the image pool", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "op2@example.com", string(user.RoleOperator))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		imagesA, imagesB := 20, 40
		packageA := dbtest.CreateTestPackage(t, s.DB, "Standard Plan", 10, &imagesA)
		packageB := dbtest.CreateTestPackage(t, s.DB, "Premium Plan", 20, &imagesB)

		s.assignPackage(t, token, clientID, packageA)
		s.createSubmission(t, token, clientID, "Spring shoot", 5)

		s.assignPackage(t, token, clientID, packageB)

		credit := s.getCredit(t, token, clientID)
		require.Equal(t, int32(20), credit.State.RemainingServings)
		require.Equal(t, int32(40), *credit.State.RemainingImages)

		// history keeps the superseded row
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(assignmentsURL, clientID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var history []*response.AssignmentResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &history))
		require.Len(t, history, 2)
	})

	s.Run("Normal case: preview reports field errors without committing", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "op3@example.com", string(user.RoleOperator))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		images := 20
		packageID := dbtest.CreateTestPackage(t, s.DB, "Standard Plan", 10, &images)

		consumed := 15
		reqBody := request.AssignPackageRequest{
			PackageTemplateID: &packageID,
			ConsumedOverride:  &consumed,
			PaymentStatus:     "paid",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(assignPreviewURL, clientID), reqBody, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var preview response.AssignmentPreviewResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &preview))
		require.Contains(t, preview.FieldErrors, "consumed_at_assignment")

		// nothing was written
		credit := s.getCredit(t, token, clientID)
		require.Nil(t, credit.ActiveAssignment)
	})

	s.Run("Error case: viewers cannot assign packages", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "viewer1@example.com", string(user.RoleViewer))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		images := 20
		packageID := dbtest.CreateTestPackage(t, s.DB, "Standard Plan", 10, &images)

		reqBody := request.AssignPackageRequest{
			PackageTemplateID: &packageID,
			PaymentStatus:     "paid",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut,
			fmt.Sprintf(assignmentURL, clientID), reqBody, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestSubmissionLifecycle - reserve, consume, release
// =============================================================================

func (s *LedgerSuite) TestSubmissionLifecycle() {
	s.Run("Normal case: create reserves, complete consumes", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "op4@example.com", string(user.RoleOperator))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		images := 20
		packageID := dbtest.CreateTestPackage(t, s.DB, "Standard Plan", 10, &images)
		s.assignPackage(t, token, clientID, packageID)

		submissionID := s.createSubmission(t, token, clientID, "June menu shoot", 5)

		credit := s.getCredit(t, token, clientID)
		require.Equal(t, int32(15), *credit.State.RemainingImages)
		require.Equal(t, int32(5), credit.State.ReservedImages)

		for _, status := range []string{"in_progress", "ready_for_review", "completed"} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
				fmt.Sprintf(submissionStatURL, submissionID),
				map[string]string{"status": status}, token)
			require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		}

		credit = s.getCredit(t, token, clientID)
		require.Equal(t, int32(15), *credit.State.RemainingImages)
		require.Equal(t, int32(0), credit.State.ReservedImages)
		require.Equal(t, int32(5), credit.State.ConsumedImages)

		// every visited state keeps its first-entry timestamp
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(submissionURL, submissionID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		var sub response.SubmissionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &sub))
		require.Equal(t, "completed", sub.Status)
		require.NotNil(t, sub.InProgressAt)
		require.NotNil(t, sub.ReadyForReviewAt)
		require.NotNil(t, sub.CompletedAt)
		require.Nil(t, sub.ChangesRequestedAt)
	})

	s.Run("Normal case: cancel releases the reserved images", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "op5@example.com", string(user.RoleOperator))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		images := 20
		packageID := dbtest.CreateTestPackage(t, s.DB, "Standard Plan", 10, &images)
		s.assignPackage(t, token, clientID, packageID)

		submissionID := s.createSubmission(t, token, clientID, "Canceled shoot", 8)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete,
			fmt.Sprintf(submissionURL, submissionID), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		credit := s.getCredit(t, token, clientID)
		require.Equal(t, int32(20), *credit.State.RemainingImages)
		require.Equal(t, int32(0), credit.State.ReservedImages)
		require.Equal(t, int32(0), credit.State.ConsumedImages)
	})

	s.Run("Error case: insufficient image credit rejects the submission", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "op6@example.com", string(user.RoleOperator))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		images := 3
		packageID := dbtest.CreateTestPackage(t, s.DB, "Small Plan", 5, &images)
		s.assignPackage(t, token, clientID, packageID)

		reqBody := request.CreateSubmissionRequest{
			ClientID:   clientID,
			Title:      "Too many images",
			ImageCount: 5,
		}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, submissionsURL, reqBody, token,
			map[string]string{"Idempotency-Key": uuid.New().String()})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

		// balance untouched
		credit := s.getCredit(t, token, clientID)
		require.Equal(t, int32(3), *credit.State.RemainingImages)
	})

	s.Run("Normal case: force override spends past the pool and is recorded", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "op7@example.com", string(user.RoleOperator))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		images := 3
		packageID := dbtest.CreateTestPackage(t, s.DB, "Small Plan", 5, &images)
		s.assignPackage(t, token, clientID, packageID)

		reqBody := request.CreateSubmissionRequest{
			ClientID:      clientID,
			Title:         "Rush job",
			ImageCount:    5,
			ForceOverride: true,
		}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, submissionsURL, reqBody, token,
			map[string]string{"Idempotency-Key": uuid.New().String()})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		submissionID := created["id"].(string)

		credit := s.getCredit(t, token, clientID)
		require.Equal(t, int32(0), *credit.State.RemainingImages)
		require.Equal(t, int32(5), credit.State.ReservedImages)

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(submissionURL, submissionID), nil, token)
		require.Equal(t, http.StatusOK, dw.Code)
		var sub response.SubmissionResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &sub))
		require.True(t, sub.CreditOverride)
	})

	s.Run("Error case: skipping pipeline stages is rejected", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "op8@example.com", string(user.RoleOperator))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		images := 20
		packageID := dbtest.CreateTestPackage(t, s.DB, "Standard Plan", 10, &images)
		s.assignPackage(t, token, clientID, packageID)

		submissionID := s.createSubmission(t, token, clientID, "Stuck shoot", 2)

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(submissionStatURL, submissionID),
			map[string]string{"status": "completed"}, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

		var body map[string]string
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
		require.Equal(t, "received", body["from"])
		require.Equal(t, "completed", body["to"])
	})
}

// =============================================================================
// TestIdempotency - duplicate submission requests
// =============================================================================

func (s *LedgerSuite) TestIdempotency() {
	s.Run("Normal case: same key replays the original submission", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "op9@example.com", string(user.RoleOperator))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		images := 20
		packageID := dbtest.CreateTestPackage(t, s.DB, "Standard Plan", 10, &images)
		s.assignPackage(t, token, clientID, packageID)

		key := uuid.New().String()
		reqBody := request.CreateSubmissionRequest{
			ClientID:   clientID,
			Title:      "Retried shoot",
			ImageCount: 4,
		}

		first := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, submissionsURL, reqBody, token,
			map[string]string{"Idempotency-Key": key})
		require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
		var firstBody map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, first.Body, &firstBody))

		second := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, submissionsURL, reqBody, token,
			map[string]string{"Idempotency-Key": key})
		require.Equal(t, http.StatusOK, second.Code, second.Body.String())
		var secondBody map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, second.Body, &secondBody))

		require.Equal(t, firstBody["id"], secondBody["id"])
		require.Equal(t, true, secondBody["replayed"])

		// images were reserved exactly once
		credit := s.getCredit(t, token, clientID)
		require.Equal(t, int32(16), *credit.State.RemainingImages)
		require.Equal(t, int32(4), credit.State.ReservedImages)
	})

	s.Run("Error case: same key with a different payload conflicts", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "op10@example.com", string(user.RoleOperator))
		clientID := dbtest.CreateTestClient(t, s.DB, "Umami Kitchen", "umami@example.com")
		images := 20
		packageID := dbtest.CreateTestPackage(t, s.DB, "Standard Plan", 10, &images)
		s.assignPackage(t, token, clientID, packageID)

		key := uuid.New().String()
		first := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, submissionsURL,
			request.CreateSubmissionRequest{ClientID: clientID, Title: "Original", ImageCount: 4}, token,
			map[string]string{"Idempotency-Key": key})
		require.Equal(t, http.StatusCreated, first.Code)

		second := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, submissionsURL,
			request.CreateSubmissionRequest{ClientID: clientID, Title: "Changed", ImageCount: 4}, token,
			map[string]string{"Idempotency-Key": key})
		require.Equal(t, http.StatusConflict, second.Code, second.Body.String())
	})
}
