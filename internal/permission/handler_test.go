package permission_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/naming-registry/internal"
	"github.com/frahmantamala/naming-registry/internal/account"
	accountPostgres "github.com/frahmantamala/naming-registry/internal/account/postgres"
	accountDatamodel "github.com/frahmantamala/naming-registry/internal/core/datamodel/account"
	"github.com/frahmantamala/naming-registry/internal/permission"
	permissionPostgres "github.com/frahmantamala/naming-registry/internal/permission/postgres"
	"github.com/frahmantamala/naming-registry/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// test-local SQLite-compatible models, the production DDL targets postgres

type sqliteAccount struct {
	NetworkID string    `gorm:"column:network_id;primaryKey"`
	Username  string    `gorm:"column:username;uniqueIndex;not null"`
	Domain    *string   `gorm:"column:domain;uniqueIndex"`
	About     string    `gorm:"column:about"`
	Enabled   bool      `gorm:"column:enabled;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sqliteAccount) TableName() string { return "account" }

type sqliteUserPermission struct {
	ID                 int64     `gorm:"primaryKey"`
	AssigneeExternalID string    `gorm:"column:assignee_external_id;not null;uniqueIndex:idx_permission_pair"`
	AssignerExternalID string    `gorm:"column:assigner_external_id;not null;uniqueIndex:idx_permission_pair"`
	Permissions        string    `gorm:"column:permissions;not null"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (sqliteUserPermission) TableName() string { return "user_permissions" }

var _ = Describe("Permission Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *permission.Handler
	)

	asCaller := func(req *http.Request, networkID string) *http.Request {
		return req.WithContext(internal.ContextWithCaller(req.Context(), networkID))
	}

	storedEncoding := func(assignee, assigner string) string {
		var row sqliteUserPermission
		err := db.Where("assignee_external_id = ? AND assigner_external_id = ?", assignee, assigner).
			First(&row).Error
		Expect(err).NotTo(HaveOccurred())
		return row.Permissions
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteAccount{}, &sqliteUserPermission{})
		Expect(err).NotTo(HaveOccurred())

		accountService := account.NewService(accountPostgres.NewAccountRepository(db), slogger)
		service := permission.NewService(permissionPostgres.NewPermissionRepository(db), accountService, slogger)
		handler = permission.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		for _, a := range []accountDatamodel.Account{
			{NetworkID: "alice-id", Username: "alice", Enabled: true},
			{NetworkID: "bob-id", Username: "bob", Enabled: true},
		} {
			Expect(db.Create(&a).Error).To(Succeed())
		}
	})

	grant := func(caller, assignee, module, level string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(permission.GrantDTO{
			AssigneeExternalID: assignee,
			Module:             module,
			Level:              level,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/permissions/grant", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Grant(rec, asCaller(req, caller))
		return rec
	}

	clearModule := func(caller, assignee, module string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(permission.ClearDTO{
			AssigneeExternalID: assignee,
			Module:             module,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/permissions/clear", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Clear(rec, asCaller(req, caller))
		return rec
	}

	It("should grant, replace and clear through the full stack", func() {
		rec := grant("alice-id", "bob-id", "docs", "write")
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(storedEncoding("bob-id", "alice-id")).To(Equal("docs:write"))

		// regrant replaces the module's level, it does not union
		rec = grant("alice-id", "bob-id", "docs", "read")
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(storedEncoding("bob-id", "alice-id")).To(Equal("docs:read"))

		rec = clearModule("alice-id", "bob-id", "docs")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var resp permission.ClearResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Username).To(Equal("bob"))

		// the emptied row is retained, not deleted
		Expect(storedEncoding("bob-id", "alice-id")).To(Equal(""))
	})

	It("should reject a grant from a caller without an account", func() {
		rec := grant("ghost-id", "bob-id", "docs", "write")
		Expect(rec.Code).To(Equal(http.StatusForbidden))

		var count int64
		Expect(db.Model(&sqliteUserPermission{}).Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})

	It("should answer clear for a pair with no row without writing one", func() {
		rec := clearModule("alice-id", "bob-id", "docs")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var resp permission.ClearResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Username).To(Equal("bob"))

		var count int64
		Expect(db.Model(&sqliteUserPermission{}).Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})

	It("should require a caller identity", func() {
		body, _ := json.Marshal(permission.GrantDTO{
			AssigneeExternalID: "bob-id",
			Module:             "docs",
			Level:              "write",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/permissions/grant", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Grant(rec, req)

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("should read the decoded set for a pair", func() {
		Expect(grant("alice-id", "bob-id", "docs", "write").Code).To(Equal(http.StatusNoContent))
		Expect(grant("alice-id", "bob-id", "wiki", "read").Code).To(Equal(http.StatusNoContent))

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/permissions?assignee_external_id=bob-id&assigner_external_id=alice-id", nil)
		rec := httptest.NewRecorder()
		handler.GetForPair(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))

		var resp permission.SetResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Grants).To(Equal([]permission.Grant{
			{Module: "docs", Level: "write"},
			{Module: "wiki", Level: "read"},
		}))
	})
})
