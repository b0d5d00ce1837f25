package catalog

import (
	"sort"

	"github.com/mobileriadardania/storefront/internal/domain"
)

// AuditReport compares uploaded files with the images products reference.
type AuditReport struct {
	Products int      `json:"products"`
	Uploads  int      `json:"uploads"`
	Orphaned []string `json:"orphaned"` // uploaded but not referenced
	Dangling []string `json:"dangling"` // referenced but not uploaded
}

// Audit builds an AuditReport. It only reads its inputs.
func Audit(items []domain.Product, files []string) AuditReport {
	refs := referencedImages(items)
	uploaded := make(map[string]struct{}, len(files))
	for _, f := range files {
		uploaded[f] = struct{}{}
	}

	report := AuditReport{
		Products: len(items),
		Uploads:  len(uploaded),
		Orphaned: []string{},
		Dangling: []string{},
	}
	for f := range uploaded {
		if _, ok := refs[f]; !ok {
			report.Orphaned = append(report.Orphaned, f)
		}
	}
	for img := range refs {
		if _, ok := uploaded[img]; !ok {
			report.Dangling = append(report.Dangling, img)
		}
	}
	sort.Strings(report.Orphaned)
	sort.Strings(report.Dangling)
	return report
}
