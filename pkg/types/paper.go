// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paper holds one Scopus search result plus its resolved abstract.
// Papers are created per search entry and not modified after construction.
type Paper struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors is the first-author string as Scopus reports it (dc:creator).
	Authors string `json:"authors" yaml:"authors"`

	// Publication is the journal or venue name.
	Publication string `json:"publication" yaml:"publication"`

	// Date is the cover date in YYYY-MM-DD form.
	Date string `json:"date" yaml:"date"`

	// DOI is the paper DOI, empty when Scopus has none.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Citations is the cited-by count.
	Citations int `json:"citations" yaml:"citations"`

	// ScopusID is the Scopus document ID with the "SCOPUS_ID:" prefix stripped.
	ScopusID string `json:"scopus_id" yaml:"scopus_id"`

	// EID is the Scopus electronic identifier.
	EID string `json:"eid,omitempty" yaml:"eid,omitempty"`

	// ScopusURL is the scopus.com inward record link built from the EID.
	ScopusURL string `json:"scopus_url,omitempty" yaml:"scopus_url,omitempty"`

	// Abstract is the multi-source resolution outcome for this paper.
	Abstract ResolvedAbstract `json:"abstract" yaml:"abstract"`
}
