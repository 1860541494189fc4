// Package apitest runs an in-memory fake of the PG management API for tests.
// Handlers follow the behaviour of the real backend: 201 on create, 204 on
// delete, empty 404s, field-map bodies for student validation failures and
// {"error": ...} bodies for everything else.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/venky2135/pg-management-system/internal/config"
	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/venky2135/pg-management-system/internal/validator"
)

// FrontendOrigin is the only origin the backend grants CORS access to.
const FrontendOrigin = "http://localhost:4200"

// Request is one call observed by the server.
type Request struct {
	Method    string
	Path      string
	RawQuery  string
	RequestID string
}

type failure struct {
	status int
	body   interface{}
}

// Server is a running fake API.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	students      map[int64]model.Student
	fees          map[int64]model.Fee
	nextStudentID int64
	nextFeeID     int64
	requests      []Request
	failures      map[string]failure
}

// New starts a fake API and closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		students:      make(map[int64]model.Student),
		fees:          make(map[int64]model.Fee),
		nextStudentID: 1,
		nextFeeID:     1,
		failures:      make(map[string]failure),
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

// Config returns a client configuration pointing at the fake.
func (s *Server) Config() *config.Config {
	return &config.Config{APIBaseURL: s.URL, LogLevel: "debug", LogFormat: "json"}
}

// SeedStudent stores st, assigning the next id when st.ID is zero.
func (s *Server) SeedStudent(st model.Student) model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == 0 {
		st.ID = s.nextStudentID
	}
	if st.ID >= s.nextStudentID {
		s.nextStudentID = st.ID + 1
	}
	s.students[st.ID] = st
	return st
}

// SeedFee stores f, assigning the next id when f.ID is zero.
func (s *Server) SeedFee(f model.Fee) model.Fee {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == 0 {
		f.ID = s.nextFeeID
	}
	if f.ID >= s.nextFeeID {
		s.nextFeeID = f.ID + 1
	}
	if f.Status == "" {
		f.Status = model.FeeStatusPaid
	}
	s.fees[f.ID] = f
	return f
}

// SetNextStudentID makes the next created student receive id.
func (s *Server) SetNextStudentID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextStudentID = id
}

// FailNext makes the next request matching method and path answer with
// status and body (a nil body sends no content).
func (s *Server) FailNext(method, path string, status int, body interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, body: body}
}

// Requests returns every request observed so far, in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Students returns the stored students ordered by id.
func (s *Server) Students() []model.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedStudents()
}

// Fees returns the stored fees ordered by id.
func (s *Server) Fees() []model.Fee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feesWhere(func(model.Fee) bool { return true })
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{FrontendOrigin},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(s.requestID(), s.record(), s.injectFailures())

	students := r.Group("/api/students")
	{
		students.GET("", s.listStudents)
		students.GET("/search", s.searchStudents)
		students.GET("/:id", s.getStudent)
		students.POST("", s.createStudent)
		students.PUT("/:id", s.updateStudent)
		students.DELETE("/:id", s.deleteStudent)
	}

	fees := r.Group("/api/fees")
	{
		fees.GET("", s.listFees)
		fees.GET("/:id", s.getFee)
		fees.POST("", s.createFee)
		fees.PUT("/:id", s.updateFee)
		fees.DELETE("/:id", s.deleteFee)
		fees.GET("/student/:studentId", s.listFeesByStudent)
		fees.GET("/student/:studentId/total", s.totalPaidByStudent)
	}

	return r
}

// requestID echoes the caller's X-Request-ID or generates one.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set("request_id", reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID, _ := c.Get("request_id")
		id, _ := reqID.(string)
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			RawQuery:  c.Request.URL.RawQuery,
			RequestID: id,
		})
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.Request.URL.Path
		s.mu.Lock()
		f, ok := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()

		if !ok {
			c.Next()
			return
		}
		if f.body == nil {
			c.AbortWithStatus(f.status)
			return
		}
		if raw, isString := f.body.(string); isString {
			c.Data(f.status, "text/plain; charset=utf-8", []byte(raw))
			c.Abort()
			return
		}
		c.AbortWithStatusJSON(f.status, f.body)
	}
}

// ─── Students ──────────────────────────────────────────────────────────

func (s *Server) listStudents(c *gin.Context) {
	c.JSON(http.StatusOK, s.Students())
}

func (s *Server) searchStudents(c *gin.Context) {
	email, roomNo := c.Query("email"), c.Query("roomNo")

	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sortedStudents()
	if email == "" && roomNo == "" {
		c.JSON(http.StatusOK, all)
		return
	}

	matches := []model.Student{}
	for _, st := range all {
		if (email != "" && st.Email == email) || (email == "" && st.RoomNo == roomNo) {
			matches = append(matches, st)
			break
		}
	}
	c.JSON(http.StatusOK, matches)
}

func (s *Server) getStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	st, found := s.students[id]
	s.mu.Unlock()
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) createStudent(c *gin.Context) {
	var st model.Student
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error creating student: " + err.Error()})
		return
	}
	if fields := validator.Struct(&st); fields != nil {
		c.JSON(http.StatusBadRequest, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if fields := s.conflicts(st, 0); fields != nil {
		c.JSON(http.StatusBadRequest, fields)
		return
	}
	st.ID = s.nextStudentID
	s.nextStudentID++
	s.students[st.ID] = st
	c.JSON(http.StatusCreated, st)
}

func (s *Server) updateStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var st model.Student
	if err := c.ShouldBindJSON(&st); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error updating student: " + err.Error()})
		return
	}
	if fields := validator.Struct(&st); fields != nil {
		c.JSON(http.StatusBadRequest, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.students[id]; !found {
		c.Status(http.StatusNotFound)
		return
	}
	if fields := s.conflicts(st, id); fields != nil {
		c.JSON(http.StatusBadRequest, fields)
		return
	}
	st.ID = id
	s.students[id] = st
	c.JSON(http.StatusOK, st)
}

func (s *Server) deleteStudent(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.students[id]; !found {
		c.Status(http.StatusNotFound)
		return
	}
	delete(s.students, id)
	c.Status(http.StatusNoContent)
}

// conflicts reports unique email / room violations, ignoring the record selfID.
func (s *Server) conflicts(st model.Student, selfID int64) map[string]string {
	for _, other := range s.students {
		if other.ID == selfID {
			continue
		}
		if other.Email == st.Email {
			return map[string]string{"email": "Email already exists"}
		}
		if other.RoomNo == st.RoomNo {
			return map[string]string{"roomNo": "Room number already assigned"}
		}
	}
	return nil
}

func (s *Server) sortedStudents() []model.Student {
	out := make([]model.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ─── Fees ──────────────────────────────────────────────────────────────

func (s *Server) listFees(c *gin.Context) {
	c.JSON(http.StatusOK, s.Fees())
}

func (s *Server) getFee(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	f, found := s.fees[id]
	s.mu.Unlock()
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) createFee(c *gin.Context) {
	var f model.Fee
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error creating fee: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.students[f.StudentID]; !found {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Student not found with ID: " + strconv.FormatInt(f.StudentID, 10)})
		return
	}
	if fields := validator.Struct(&f); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error creating fee: " + validator.First(fields, "amount", "paymentDate", "mode")})
		return
	}
	f.ID = s.nextFeeID
	s.nextFeeID++
	f.Status = model.FeeStatusPaid
	s.fees[f.ID] = f
	c.JSON(http.StatusCreated, f)
}

func (s *Server) updateFee(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var patch model.Fee
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error updating fee: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, found := s.fees[id]
	if !found {
		c.Status(http.StatusNotFound)
		return
	}
	if patch.Amount != 0 {
		f.Amount = patch.Amount
	}
	if patch.PaymentDate != "" {
		f.PaymentDate = patch.PaymentDate
	}
	if patch.Mode != "" {
		f.Mode = patch.Mode
	}
	if patch.Status != "" {
		f.Status = patch.Status
	}
	s.fees[id] = f
	c.JSON(http.StatusOK, f)
}

func (s *Server) deleteFee(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.fees[id]; !found {
		c.Status(http.StatusNotFound)
		return
	}
	delete(s.fees, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listFeesByStudent(c *gin.Context) {
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.feesWhere(func(f model.Fee) bool { return f.StudentID == studentID }))
}

func (s *Server) totalPaidByStudent(c *gin.Context) {
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, f := range s.feesWhere(func(f model.Fee) bool {
		return f.StudentID == studentID && f.Status == model.FeeStatusPaid
	}) {
		total += f.Amount
	}
	c.JSON(http.StatusOK, model.TotalPaid{TotalPaid: total})
}

// feesWhere returns matching fees in id order, which is insertion order,
// not payment-date order.
func (s *Server) feesWhere(keep func(model.Fee) bool) []model.Fee {
	out := []model.Fee{}
	for _, f := range s.fees {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id: " + c.Param(name)})
		return 0, false
	}
	return id, true
}
