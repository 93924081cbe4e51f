//go:build development
// +build development

// This build tag ensures that this file will not be included unless
//  the `development` tag is explicitly requested (which should be never)

package models

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/domain"
	"github.com/verixa-platform/verixa-api/storage"
)

// Fixtures hold slices of model objects created for test fixtures
type Fixtures struct {
	Claims
	Evaluations
	Files
	IssuedDocuments
	Payments
	Tasks
	UserAccessTokens
	Users
	ValidatorSubmissions
}

// TestBuffaloContext is a buffalo context user in tests
type TestBuffaloContext struct {
	buffalo.DefaultContext
	params map[interface{}]interface{}
}

// Value returns the value associated with the given key in the test context
func (b *TestBuffaloContext) Value(key interface{}) interface{} {
	return b.params[key]
}

// Set sets the value to be associated with the given key in the test context
func (b *TestBuffaloContext) Set(key string, val interface{}) {
	b.params[key] = val
}

// CreateTestContext sets the domain.ContextKeyCurrentUser to the user param in the TestBuffaloContext
func CreateTestContext(user User) buffalo.Context {
	ctx := &TestBuffaloContext{
		params: map[interface{}]interface{}{},
	}
	ctx.Set(domain.ContextKeyCurrentUser, user)
	return ctx
}

// CreateUserFixtures generates any number of user records for testing, all with the
// given role. The access token for each user is the same as the user's wallet address.
func CreateUserFixtures(tx *pop.Connection, n int, role api.UserRole) Fixtures {
	unique := domain.GetUUID().String()

	users := make(Users, n)
	accessTokenFixtures := make(UserAccessTokens, n)
	for i := range users {
		users[i].WalletAddress = fmt.Sprintf("0x%s%02d", unique[0:8], i)
		users[i].Role = role
		users[i].PasswordHash = fmt.Sprintf("fixture-hash-%d", i)
		MustCreate(tx, &users[i])

		accessTokenFixtures[i].UserID = users[i].ID
		accessTokenFixtures[i].TokenHash = HashAccessToken(users[i].WalletAddress)
		accessTokenFixtures[i].ExpiresAt = time.Now().UTC().Add(time.Minute * 60)
		MustCreate(tx, &accessTokenFixtures[i])
	}

	return Fixtures{
		Users:            users,
		UserAccessTokens: accessTokenFixtures,
	}
}

// CreateClaimFixtures generates any number of pending, unverified claim records for
// testing, along with the patient and insurance users that own them.
func CreateClaimFixtures(tx *pop.Connection, n int) Fixtures {
	patients := CreateUserFixtures(tx, 1, api.UserRolePatient).Users
	insurances := CreateUserFixtures(tx, 1, api.UserRoleInsurance).Users

	claims := make(Claims, n)
	for i := range claims {
		claims[i] = Claim{
			PatientID:   patients[0].ID,
			InsuranceID: insurances[0].ID,
			ReportURL:   fmt.Sprintf("https://docs.example.com/report-%s.pdf", randStr(8)),
			Status:      api.ClaimStatusPending,
		}
		MustCreate(tx, &claims[i])
	}

	return Fixtures{
		Claims: claims,
		Users:  append(patients, insurances...),
	}
}

// CreateIssuedDocumentFixtures generates any number of active issued documents for
// the given patient, along with the issuer user.
func CreateIssuedDocumentFixtures(tx *pop.Connection, n int, patientID uuid.UUID) Fixtures {
	issuers := CreateUserFixtures(tx, 1, api.UserRoleIssuer).Users

	docs := make(IssuedDocuments, n)
	for i := range docs {
		docs[i] = IssuedDocument{
			PatientID:   patientID,
			ReportType:  "lab_report",
			DocumentURL: fmt.Sprintf("https://docs.example.com/issued-%s.pdf", randStr(8)),
			IssuerID:    issuers[0].ID,
			IsActive:    true,
		}
		MustCreate(tx, &docs[i])
	}

	return Fixtures{
		IssuedDocuments: docs,
		Users:           issuers,
	}
}

// createEvaluationFixture records one evaluation for a claim. A nil bucket means the
// evaluator gave no routing hint.
func createEvaluationFixture(tx *pop.Connection, claimID uuid.UUID, bucket *api.EvaluationBucket, evaluatedAt time.Time) Evaluation {
	e := Evaluation{
		ClaimID:     claimID,
		ReportType:  "lab_report",
		DocumentURL: fmt.Sprintf("https://docs.example.com/eval-%s.pdf", randStr(8)),
		AIScore:     int(rand.Int31n(100)),
		EvaluatedAt: evaluatedAt,
	}
	if bucket != nil {
		e.Bucket = nulls.NewString(string(*bucket))
	}
	MustCreate(tx, &e)
	return e
}

// createTaskFixture mirrors one on-chain task for a claim.
func createTaskFixture(tx *pop.Connection, claim Claim, creatorID uuid.UUID, externalID int64, requiredValidators int) Task {
	t := Task{
		UserID:             creatorID,
		ContractAddress:    "0xcontract" + randStr(8),
		TaskID:             externalID,
		DocCID:             "bafy" + randStr(16),
		RequiredValidators: requiredValidators,
		Reward:             api.RewardAmount(1500),
		ClaimID:            claim.ID,
		Status:             api.TaskStatusPending,
	}
	MustCreate(tx, &t)
	return t
}

// CreateFileFixtures generates any number of file records for testing
//
//	all owned by the same user.
func CreateFileFixtures(tx *pop.Connection, n int, createdByID uuid.UUID) Fixtures {
	_ = storage.CreateS3Bucket()
	files := make(Files, n)
	for i := range files {
		f := File{
			Content:     []byte("GIF87a"),
			Name:        fmt.Sprintf("file_%d.gif", i),
			CreatedByID: createdByID,
		}
		if err := f.Store(tx); err != nil {
			panic(fmt.Sprintf("failed to create file fixture, %s", err))
		}
		files[i] = f
	}

	return Fixtures{
		Files: files,
	}
}

// MustCreate saves a record to the database with validation. Panics if any error occurs.
func MustCreate(tx *pop.Connection, f interface{}) {
	// Use `create` instead of `tx.Create` to check validation rules
	err := create(tx, f)
	if err != nil {
		panic(fmt.Sprintf("error creating %T fixture, %s", f, err))
	}
}

func randStr(n int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rand.Int63()%int64(len(chars))]
	}
	return string(b)
}

func DestroyAll() {
	// delete all Payments
	var payments Payments
	destroyTable(&payments)

	// delete all ValidatorSubmissions and Tasks
	var submissions ValidatorSubmissions
	destroyTable(&submissions)
	var tasks Tasks
	destroyTable(&tasks)

	// delete all Evaluations and Claims
	var evaluations Evaluations
	destroyTable(&evaluations)
	var claims Claims
	destroyTable(&claims)

	// delete all IssuedDocuments and Files
	var docs IssuedDocuments
	destroyTable(&docs)
	var files Files
	destroyTable(&files)

	// delete all Users and UserAccessTokens
	var users Users
	destroyTable(&users)
}

func destroyTable(i interface{}) {
	if err := DB.All(i); err != nil {
		panic(err.Error())
	}
	if err := DB.Destroy(i); err != nil {
		panic(err.Error())
	}
}
