package services

import (
	"testing"

	"sentinel/internal/models"
	"sentinel/internal/pagination"
	"sentinel/internal/testutil"
)

func TestCreateDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDocumentService(db)
	csr := testutil.CreateTestUser(t, db, models.RoleCSR)
	account := testutil.CreateTestAccount(t, db)

	doc, err := svc.CreateDocument(actorFor(csr), testMeta(), CreateDocumentInput{
		Name:             "dec-page.pdf",
		FilePath:         "/storage/dec-page.pdf",
		FileType:         "application/pdf",
		FileSize:         48213,
		Category:         "Policy Documents",
		LinkedEntityType: models.EntityAccount,
		LinkedEntityID:   account.ID,
	})
	testutil.AssertNoError(t, err)

	if doc.UploadedBy != csr.ID {
		t.Errorf("uploader should be the actor, got %s", doc.UploadedBy)
	}
	if n := countAuditEntries(db, doc.ID); n != 1 {
		t.Errorf("expected 1 create audit entry, got %d", n)
	}

	_, err = svc.CreateDocument(actorFor(csr), testMeta(), CreateDocumentInput{Name: "no-path.pdf"})
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestGetDocumentsFiltersByLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDocumentService(db)
	csr := testutil.CreateTestUser(t, db, models.RoleCSR)
	a1 := testutil.CreateTestAccount(t, db)
	a2 := testutil.CreateTestAccount(t, db)

	_, err := svc.CreateDocument(actorFor(csr), testMeta(), CreateDocumentInput{
		Name: "a.pdf", FilePath: "/storage/a.pdf", LinkedEntityType: models.EntityAccount, LinkedEntityID: a1.ID,
	})
	testutil.AssertNoError(t, err)
	_, err = svc.CreateDocument(actorFor(csr), testMeta(), CreateDocumentInput{
		Name: "b.pdf", FilePath: "/storage/b.pdf", LinkedEntityType: models.EntityAccount, LinkedEntityID: a2.ID,
	})
	testutil.AssertNoError(t, err)

	page := pagination.PageRequest{Page: 1, PageSize: 20}
	result, err := svc.GetDocuments(page, models.EntityAccount, a1.ID)
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 || result.Data[0].Name != "a.pdf" {
		t.Errorf("link filter returned %d documents", result.TotalItems)
	}
}
