package handlers

// Request schemas, one per mutating endpoint. Pointer fields mark optionals
// whose omission keeps the stored value on partial updates.

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createClassRequest struct {
	Name  string `json:"name" validate:"required"`
	Grade string `json:"grade"`
}

type updateClassRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Grade *string `json:"grade"`
}

type createStudentRequest struct {
	ClassID   int64  `json:"classId" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required"`
	StudentNo string `json:"studentNo"`
	Status    string `json:"status"`
}

type batchDeleteStudentsRequest struct {
	StudentIDs []int64 `json:"studentIds" validate:"required,min=1,dive,gt=0"`
}

type createTeacherRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=admin teacher"`
}

type updateTeacherRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=1"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin teacher"`
}

type updatePermissionsRequest struct {
	ClassIDs []int64 `json:"classIds" validate:"dive,gt=0"`
}

type attendanceRequest struct {
	ClassID   int64  `json:"classId" validate:"required,gt=0"`
	StudentID int64  `json:"studentId" validate:"required,gt=0"`
	Status    string `json:"status" validate:"required,oneof=present late absent leave"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
}

type evaluationRequest struct {
	ClassID   int64    `json:"classId" validate:"required,gt=0"`
	StudentID int64    `json:"studentId" validate:"required,gt=0"`
	Score     int      `json:"score" validate:"required,min=1,max=5"`
	Tags      []string `json:"tags"`
	Comment   string   `json:"comment"`
}

type kvUpsertRequest struct {
	Namespace string `json:"namespace" validate:"required"`
	Key       string `json:"key" validate:"required"`
	Value     string `json:"value"`
}

type kvDeleteRequest struct {
	Namespace string `json:"namespace" validate:"required"`
	Key       string `json:"key" validate:"required"`
}

type kvClearRequest struct {
	Namespace string `json:"namespace" validate:"required"`
}
