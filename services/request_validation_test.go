package services

import (
	"strings"
	"testing"

	"lexvault/models"
)

func TestCreateDocumentRequestValidate(t *testing.T) {
	valid := CreateDocumentRequest{Name: "retainer-agreement.pdf", DocType: models.DocTypePDF, Size: 2048}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request failed validation: %v", err)
	}

	tests := []struct {
		name string
		req  CreateDocumentRequest
	}{
		{"missing name", CreateDocumentRequest{DocType: models.DocTypePDF}},
		{"missing doc type", CreateDocumentRequest{Name: "brief.docx"}},
		{"unknown doc type", CreateDocumentRequest{Name: "brief.docx", DocType: "image"}},
		{"negative size", CreateDocumentRequest{Name: "brief.docx", DocType: models.DocTypeWord, Size: -1}},
		{"name too long", CreateDocumentRequest{Name: strings.Repeat("x", 256), DocType: models.DocTypeWord}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestUpdateDocumentRequestValidate(t *testing.T) {
	// Partial updates are fine: empty fields mean "leave unchanged".
	if err := (UpdateDocumentRequest{}).Validate(); err != nil {
		t.Errorf("empty update failed validation: %v", err)
	}
	if err := (UpdateDocumentRequest{Name: "amended-brief.docx"}).Validate(); err != nil {
		t.Errorf("rename-only update failed validation: %v", err)
	}

	if err := (UpdateDocumentRequest{DocType: "image"}).Validate(); err == nil {
		t.Error("unknown doc type should fail validation")
	}
	if err := (UpdateDocumentRequest{Name: strings.Repeat("x", 256)}).Validate(); err == nil {
		t.Error("overlong name should fail validation")
	}
}

func TestCreateAssignmentRequestValidate(t *testing.T) {
	valid := CreateAssignmentRequest{DocumentID: "65f2a1", AssigneeID: "65f2a2", Notes: "please review"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request failed validation: %v", err)
	}

	if err := (CreateAssignmentRequest{AssigneeID: "65f2a2"}).Validate(); err == nil {
		t.Error("missing document id should fail validation")
	}
	if err := (CreateAssignmentRequest{DocumentID: "65f2a1"}).Validate(); err == nil {
		t.Error("missing assignee id should fail validation")
	}

	long := CreateAssignmentRequest{DocumentID: "65f2a1", AssigneeID: "65f2a2", Notes: strings.Repeat("x", 2001)}
	if err := long.Validate(); err == nil {
		t.Error("overlong notes should fail validation")
	}
}
