package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"course-platform/internal/data/entity"
	"course-platform/internal/data/repository"
	"course-platform/internal/payment"
	"course-platform/pkg/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v75"
)

// ==================== IN-MEMORY REPOSITORIES ====================

type memUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	r.users[user.ID] = user
	return nil
}

type memSessionRepo struct {
	sessions map[string]*entity.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (r *memSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.sessions[session.Token.String()] = session
	return nil
}

func (r *memSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	session, ok := r.sessions[token]
	if !ok || session.RevokedAt != nil {
		return nil, nil
	}
	return session, nil
}

func (r *memSessionRepo) Revoke(ctx context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}

func (r *memSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	for token, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

type memPasswordResetRepo struct {
	resets map[string]*entity.PasswordReset
}

func newMemPasswordResetRepo() *memPasswordResetRepo {
	return &memPasswordResetRepo{resets: make(map[string]*entity.PasswordReset)}
}

func (r *memPasswordResetRepo) Create(ctx context.Context, reset *entity.PasswordReset) error {
	r.resets[reset.Token] = reset
	return nil
}

func (r *memPasswordResetRepo) FindValidToken(ctx context.Context, token string) (*entity.PasswordReset, error) {
	reset, ok := r.resets[token]
	if !ok || reset.IsUsed {
		return nil, nil
	}
	return reset, nil
}

func (r *memPasswordResetRepo) MarkAsUsed(ctx context.Context, resetID uuid.UUID) error {
	for _, reset := range r.resets {
		if reset.ID == resetID {
			reset.IsUsed = true
		}
	}
	return nil
}

type memCourseRepo struct {
	courses map[uuid.UUID]*entity.Course
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: make(map[uuid.UUID]*entity.Course)}
}

func (r *memCourseRepo) Create(ctx context.Context, course *entity.Course) error {
	r.courses[course.ID] = course
	return nil
}

func (r *memCourseRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Course, error) {
	course, ok := r.courses[id]
	if !ok || course.DeletedAt != nil {
		return nil, nil
	}
	return course, nil
}

func (r *memCourseRepo) Update(ctx context.Context, course *entity.Course) error {
	r.courses[course.ID] = course
	return nil
}

func (r *memCourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if course, ok := r.courses[id]; ok {
		now := course.UpdatedAt
		course.DeletedAt = &now
	}
	return nil
}

func (r *memCourseRepo) matches(course *entity.Course, filter repository.CourseFilter) bool {
	if !course.Published || course.DeletedAt != nil {
		return false
	}
	if filter.Query != "" && !strings.Contains(strings.ToLower(course.Title), strings.ToLower(filter.Query)) {
		return false
	}
	if filter.Category != "" && course.Category != filter.Category {
		return false
	}
	if filter.Level != "" && string(course.Level) != filter.Level {
		return false
	}
	return true
}

func (r *memCourseRepo) FindPublished(ctx context.Context, filter repository.CourseFilter, offset, limit int) ([]*entity.Course, error) {
	var result []*entity.Course
	for _, course := range r.courses {
		if r.matches(course, filter) {
			result = append(result, course)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		switch filter.SortBy {
		case "price_asc":
			return result[i].Price < result[j].Price
		case "price_desc":
			return result[i].Price > result[j].Price
		default:
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
	})

	if offset >= len(result) {
		return nil, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func (r *memCourseRepo) CountPublished(ctx context.Context, filter repository.CourseFilter) (int64, error) {
	var count int64
	for _, course := range r.courses {
		if r.matches(course, filter) {
			count++
		}
	}
	return count, nil
}

func (r *memCourseRepo) FindByInstructor(ctx context.Context, instructorID uuid.UUID) ([]*entity.Course, error) {
	var result []*entity.Course
	for _, course := range r.courses {
		if course.InstructorID == instructorID && course.DeletedAt == nil {
			result = append(result, course)
		}
	}
	return result, nil
}

func (r *memCourseRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	if course, ok := r.courses[id]; ok {
		course.Published = published
	}
	return nil
}

type memLectureRepo struct {
	lectures map[uuid.UUID]*entity.Lecture
}

func newMemLectureRepo() *memLectureRepo {
	return &memLectureRepo{lectures: make(map[uuid.UUID]*entity.Lecture)}
}

func (r *memLectureRepo) Create(ctx context.Context, lecture *entity.Lecture) error {
	r.lectures[lecture.ID] = lecture
	return nil
}

func (r *memLectureRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lecture, error) {
	lecture, ok := r.lectures[id]
	if !ok || lecture.DeletedAt != nil {
		return nil, nil
	}
	return lecture, nil
}

func (r *memLectureRepo) FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*entity.Lecture, error) {
	var result []*entity.Lecture
	for _, lecture := range r.lectures {
		if lecture.CourseID == courseID && lecture.DeletedAt == nil {
			result = append(result, lecture)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result, nil
}

func (r *memLectureRepo) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	lectures, _ := r.FindByCourse(ctx, courseID)
	return int64(len(lectures)), nil
}

func (r *memLectureRepo) MaxPosition(ctx context.Context, courseID uuid.UUID) (int, error) {
	max := 0
	for _, lecture := range r.lectures {
		if lecture.CourseID == courseID && lecture.DeletedAt == nil && lecture.Position > max {
			max = lecture.Position
		}
	}
	return max, nil
}

func (r *memLectureRepo) Update(ctx context.Context, lecture *entity.Lecture) error {
	r.lectures[lecture.ID] = lecture
	return nil
}

func (r *memLectureRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if lecture, ok := r.lectures[id]; ok {
		now := lecture.UpdatedAt
		lecture.DeletedAt = &now
	}
	return nil
}

func (r *memLectureRepo) ShiftPositionsAfter(ctx context.Context, courseID uuid.UUID, position int) error {
	for _, lecture := range r.lectures {
		if lecture.CourseID == courseID && lecture.DeletedAt == nil && lecture.Position > position {
			lecture.Position--
		}
	}
	return nil
}

type memEnrollmentRepo struct {
	enrollments map[string]*entity.Enrollment
	courses     *memCourseRepo
}

func newMemEnrollmentRepo(courses *memCourseRepo) *memEnrollmentRepo {
	return &memEnrollmentRepo{
		enrollments: make(map[string]*entity.Enrollment),
		courses:     courses,
	}
}

func enrollmentKey(userID, courseID uuid.UUID) string {
	return userID.String() + "/" + courseID.String()
}

func (r *memEnrollmentRepo) Create(ctx context.Context, enrollment *entity.Enrollment) error {
	key := enrollmentKey(enrollment.UserID, enrollment.CourseID)
	if _, ok := r.enrollments[key]; ok {
		return nil // conflict, do nothing
	}
	r.enrollments[key] = enrollment
	return nil
}

func (r *memEnrollmentRepo) Exists(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	_, ok := r.enrollments[enrollmentKey(userID, courseID)]
	return ok, nil
}

func (r *memEnrollmentRepo) FindCoursesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Course, error) {
	var result []*entity.Course
	for _, enrollment := range r.enrollments {
		if enrollment.UserID != userID {
			continue
		}
		if course, ok := r.courses.courses[enrollment.CourseID]; ok {
			result = append(result, course)
		}
	}
	return result, nil
}

type memPurchaseRepo struct {
	purchases map[uuid.UUID]*entity.Purchase
}

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{purchases: make(map[uuid.UUID]*entity.Purchase)}
}

func (r *memPurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	r.purchases[purchase.ID] = purchase
	return nil
}

func (r *memPurchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	return r.purchases[id], nil
}

func (r *memPurchaseRepo) FindPendingByOrderID(ctx context.Context, provider entity.PaymentProvider, orderID string) (*entity.Purchase, error) {
	for _, purchase := range r.purchases {
		if purchase.Provider == provider &&
			purchase.ProviderOrderID == orderID &&
			purchase.Status == entity.PurchaseStatusPending {
			return purchase, nil
		}
	}
	return nil, nil
}

func (r *memPurchaseRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Purchase, error) {
	var result []*entity.Purchase
	for _, purchase := range r.purchases {
		if purchase.UserID == userID {
			result = append(result, purchase)
		}
	}
	return result, nil
}

func (r *memPurchaseRepo) MarkCompleted(ctx context.Context, id uuid.UUID, paymentID string) (bool, error) {
	purchase, ok := r.purchases[id]
	if !ok || purchase.Status != entity.PurchaseStatusPending {
		return false, nil
	}
	purchase.Status = entity.PurchaseStatusCompleted
	purchase.ProviderPaymentID = &paymentID
	return true, nil
}

func (r *memPurchaseRepo) MarkFailed(ctx context.Context, id uuid.UUID) error {
	purchase, ok := r.purchases[id]
	if !ok || purchase.Status != entity.PurchaseStatusPending {
		return nil
	}
	purchase.Status = entity.PurchaseStatusFailed
	return nil
}

type memProgressRepo struct {
	progress map[uuid.UUID]*entity.CourseProgress
	lectures map[string]*entity.LectureProgress
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{
		progress: make(map[uuid.UUID]*entity.CourseProgress),
		lectures: make(map[string]*entity.LectureProgress),
	}
}

func (r *memProgressRepo) Create(ctx context.Context, progress *entity.CourseProgress) error {
	for _, existing := range r.progress {
		if existing.UserID == progress.UserID && existing.CourseID == progress.CourseID {
			return nil // conflict, do nothing
		}
	}
	r.progress[progress.ID] = progress
	return nil
}

func (r *memProgressRepo) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*entity.CourseProgress, error) {
	for _, progress := range r.progress {
		if progress.UserID == userID && progress.CourseID == courseID {
			return progress, nil
		}
	}
	return nil, nil
}

func (r *memProgressRepo) FindLectureProgress(ctx context.Context, courseProgressID uuid.UUID) ([]*entity.LectureProgress, error) {
	var result []*entity.LectureProgress
	for _, item := range r.lectures {
		if item.CourseProgressID == courseProgressID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (r *memProgressRepo) UpsertLectureViewed(ctx context.Context, courseProgressID, lectureID uuid.UUID, viewed bool) error {
	key := courseProgressID.String() + "/" + lectureID.String()
	if item, ok := r.lectures[key]; ok {
		item.Viewed = viewed
		return nil
	}
	r.lectures[key] = &entity.LectureProgress{
		BaseNoDelete:     entity.BaseNoDelete{ID: uuid.New()},
		CourseProgressID: courseProgressID,
		LectureID:        lectureID,
		Viewed:           viewed,
	}
	return nil
}

func (r *memProgressRepo) ResetLectures(ctx context.Context, courseProgressID uuid.UUID) error {
	for _, item := range r.lectures {
		if item.CourseProgressID == courseProgressID {
			item.Viewed = false
		}
	}
	return nil
}

func (r *memProgressRepo) SetCompleted(ctx context.Context, courseProgressID uuid.UUID, completed bool) error {
	if progress, ok := r.progress[courseProgressID]; ok {
		progress.Completed = completed
	}
	return nil
}

// ==================== FAKE PAYMENT GATEWAYS ====================

type fakeStripeGateway struct {
	session payment.CheckoutSession
	event   stripe.Event
	sigErr  error
}

func (g *fakeStripeGateway) CreateCheckoutSession(ctx context.Context, params payment.CheckoutParams) (*payment.CheckoutSession, error) {
	session := g.session
	return &session, nil
}

func (g *fakeStripeGateway) ConstructWebhookEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	if g.sigErr != nil {
		return stripe.Event{}, g.sigErr
	}
	return g.event, nil
}

type fakeRazorpayGateway struct {
	orderID   string
	keySecret string
}

func (g *fakeRazorpayGateway) CreateOrder(ctx context.Context, params payment.OrderParams) (string, error) {
	return g.orderID, nil
}

func (g *fakeRazorpayGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil)) == signature
}

func signRazorpay(keySecret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ==================== FIXTURES ====================

func newTestRepository() *repository.Repository {
	courses := newMemCourseRepo()
	return &repository.Repository{
		User:          newMemUserRepo(),
		Session:       newMemSessionRepo(),
		PasswordReset: newMemPasswordResetRepo(),
		Course:        courses,
		Lecture:       newMemLectureRepo(),
		Enrollment:    newMemEnrollmentRepo(courses),
		Purchase:      newMemPurchaseRepo(),
		Progress:      newMemProgressRepo(),
	}
}

func newTestConfig() *utils.Config {
	config := &utils.Config{}
	config.App.Name = "course-platform"
	config.App.Currency = "usd"
	config.Session.ExpiryHours = 24
	config.Reset.ExpiryMinutes = 30
	config.Razorpay.KeyID = "rzp_test_key"
	config.Razorpay.KeySecret = "rzp_test_secret"
	return config
}
