// Package domain models Korean disaster-risk district (재해위험지구) data.
//
// # Data Source
//
// Risk-zone records come from the public disaster-risk district dataset
// published on the Korean open-data portal as a CSV extract. Each row is one
// designated district with a representative point coordinate and descriptive
// attributes. Parcel boundaries come from the national farm-map service as
// JSON exports, one file per land-use category (paddy, field, orchard,
// uncultivated, facility).
//
// # CSV Conventions
//
// Columns used by this service (other columns are ignored):
//
//	x, y                     WGS-84 longitude / latitude of the district point
//	DSGN_AREA                designated area in square metres
//	DST_RSK_DSTRCT_NM        district name
//	DST_RSK_DSTRCTCD         district management code
//	DST_RSK_DSTRCT_TYPE_CD   type code, 1–6 (steep slope, flooding, ...)
//	DST_RSK_DSTRCT_GRD_CD    grade code (severity of the designation)
//	DST_RSK_DSTRCT_RGN_CD    administrative region code
//	FCLT_NM                  facility name, may be empty
//	DSGN_YMD                 designation date, yyyymmdd
//	DSGN_RSN                 designation reason, free text
//	RSK_FACTR_CN             risk factor description, free text
//
// Rows missing x, y, or DSGN_AREA cannot be rendered and are skipped during
// load; the skip count is reported rather than failing the dataset.
//
// # Display Rules
//
// A district renders as a circle whose radius in metres is the square root of
// its designated area, colored by type code:
//
//	1 blue | 2 purple | 3 gray | 4 orange | 5 green | 6 darkblue
//
// Unknown type codes fall back to red so bad data stays visible.
//
// # Farm-Map JSON
//
// Parcel files carry a nested structure:
//
//	output.farmmapData.data[]  →  {uid, pnu, geometry:[{xy:[{x,y}...]}...]}
//
// Coordinates are EPSG:5179 (Korea 2000 / Unified CS) plane coordinates with
// x as easting and y as northing, transformed once to WGS-84 for display.
// The pnu is the 19-digit national parcel number; uid is the farm-map row id.
//
// # Geocoding
//
// Addresses are resolved through the Kakao local address-search API, which
// returns x (longitude) and y (latitude) as strings. A missing match is a
// user-visible condition ([ErrAddressNotFound]), not an internal error.
package domain
