package dto

import "fmt"

// ArcGISItem is the portion of an ArcGIS content item description the
// country data client needs: the URL of the feature service hosting
// the country-enriched observation layer.
type ArcGISItem struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	URL   string       `json:"url"`
	Error *ArcGISError `json:"error"`
}

// ArcGISFeature is one row of a feature layer query. Geometry is never
// requested, so only the attribute map is populated.
type ArcGISFeature struct {
	Attributes map[string]FieldValue `json:"attributes"`
}

// ArcGISError is the error object ArcGIS embeds in an HTTP 200 body
// when a query fails.
type ArcGISError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ArcGISError) Error() string {
	return fmt.Sprintf("arcgis error %d: %s", e.Code, e.Message)
}

// ArcGISQueryResponse is a page of feature layer query results.
// ExceededTransferLimit signals that more pages remain.
type ArcGISQueryResponse struct {
	Features              []ArcGISFeature `json:"features"`
	ExceededTransferLimit bool            `json:"exceededTransferLimit"`
	Error                 *ArcGISError    `json:"error"`
}
