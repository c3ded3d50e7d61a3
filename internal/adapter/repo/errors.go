package repo

import (
	"wfm/internal/domain"
	"wfm/internal/infra"
)

// uniqueFields maps unique constraints from sqlinline.Schema to the input field
// reported back to the caller.
var uniqueFields = map[string]string{
	"users_email_key":   "email",
	"events_slug_key":   "slug",
	"photos_slug_key":   "slug",
	"users_pkey":        "id",
	"events_pkey":       "id",
	"photos_pkey":       "id",
	"items_pkey":        "id",
	"donations_pkey":    "id",
	"testimonials_pkey": "id",
}

// referenceFields maps foreign keys to the field that points at the missing
// row on insert, and to the referencing relation on delete.
var referenceFields = map[string][2]string{
	"photos_event_id_fkey":            {"event_id", "photos"},
	"donations_user_id_fkey":          {"user_id", "donations"},
	"donations_event_id_fkey":         {"event_id", "donations"},
	"donation_items_item_id_fkey":     {"item_id", "donation_items"},
	"donation_items_donation_id_fkey": {"donation_id", "donation_items"},
	"testimonials_user_id_fkey":       {"user_id", "testimonials"},
}

const duplicateItemConstraint = "donation_items_item_donation_key"

// translateWrite turns constraint violations raised by inserts and updates
// into domain errors. itemID names the donation item being written, if any.
func translateWrite(err error, itemID string) error {
	if err == nil {
		return nil
	}
	if constraint, ok := infra.UniqueViolation(err); ok {
		if constraint == duplicateItemConstraint {
			return domain.DuplicateItem(itemID)
		}
		field := uniqueFields[constraint]
		return domain.Conflict(field, "a record with this "+fieldOrValue(field)+" already exists")
	}
	if constraint, ok := infra.ForeignKeyViolation(err); ok {
		return domain.Invalid(referenceFields[constraint][0], "referenced record does not exist")
	}
	if infra.InvalidTextRepresentation(err) {
		return domain.Invalid("id", "malformed identifier")
	}
	return err
}

// translateDelete turns a restrict violation into a referential integrity error.
func translateDelete(err error) error {
	if err == nil {
		return nil
	}
	if constraint, ok := infra.ForeignKeyViolation(err); ok {
		relation := referenceFields[constraint][1]
		return domain.Protected(relation, "record is still referenced by "+fieldOrValue(relation))
	}
	return translateKey(err)
}

func translateRead(err error) error {
	if infra.IsNoRows(err) {
		return domain.ErrNotFound
	}
	return translateKey(err)
}

// translateKey reports a caller supplied id that PostgreSQL cannot parse as a
// uuid as a missing row.
func translateKey(err error) error {
	if infra.InvalidTextRepresentation(err) {
		return domain.ErrNotFound
	}
	return err
}

func fieldOrValue(field string) string {
	if field == "" {
		return "value"
	}
	return field
}
