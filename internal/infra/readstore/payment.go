package readstore

import (
	"context"
	"time"

	"casaraiz-backend/internal/infra"
	"casaraiz-backend/internal/infra/db"
	"casaraiz-backend/internal/pkg/pgconv"
	"casaraiz-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

func (r *PaymentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT p.id, p.house_id, p.user_id, p.offering_id, o.title, p.registration_id,
		        p.kind, p.quantity, p.amount_cents, p.original_price_cents, p.fee_cents,
		        p.sub_method, p.external_reference, p.external_payment_id, p.status,
		        p.split_applied, p.commission_pct, s.platform_cents, s.house_cents,
		        s.transfer_status, p.created_at
		   FROM payments p
		   JOIN offerings o ON o.id = p.offering_id
		   LEFT JOIN payment_splits s ON s.payment_id = p.id
		  WHERE p.id = $1`,
		id,
	)

	var (
		view           queries.PaymentView
		registrationID pgtype.UUID
		extPaymentID   pgtype.Text
		platformCents  pgtype.Int8
		houseCents     pgtype.Int8
		transferStatus pgtype.Text
	)
	if err := row.Scan(
		&view.ID, &view.HouseID, &view.UserID, &view.OfferingID, &view.OfferingTitle,
		&registrationID, &view.Kind, &view.Quantity, &view.AmountCents,
		&view.OriginalPriceCents, &view.FeeCents, &view.SubMethod,
		&view.ExternalReference, &extPaymentID, &view.Status, &view.SplitApplied,
		&view.CommissionPct, &platformCents, &houseCents, &transferStatus, &view.CreatedAt,
	); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by ID", err)
	}

	view.RegistrationID = pgconv.UUIDPtrFromPgtype(registrationID)
	view.ExternalPaymentID = pgconv.StringPtrFromPgtype(extPaymentID)
	view.PlatformCents = pgconv.Int64PtrFromPgtype(platformCents)
	view.HouseCents = pgconv.Int64PtrFromPgtype(houseCents)
	view.TransferStatus = pgconv.StringPtrFromPgtype(transferStatus)
	return &view, nil
}

const paymentListSelect = `
SELECT p.id, p.offering_id, o.title, p.user_id, p.kind, p.amount_cents, p.status, p.created_at
  FROM payments p
  JOIN offerings o ON o.id = p.offering_id`

func (r *PaymentReadStore) FindByHouseIDFirstPage(ctx context.Context, houseID uuid.UUID, status string, limit int32) ([]*queries.PaymentListItem, error) {
	rows, err := r.db.Query(ctx,
		paymentListSelect+`
		 WHERE p.house_id = $1
		   AND ($2 = '' OR p.status = $2)
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT $3`,
		houseID, status, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find payments first page", err)
	}
	return collectPaymentListItems(rows)
}

func (r *PaymentReadStore) FindByHouseIDKeyset(ctx context.Context, houseID uuid.UUID, status string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.PaymentListItem, error) {
	rows, err := r.db.Query(ctx,
		paymentListSelect+`
		 WHERE p.house_id = $1
		   AND ($2 = '' OR p.status = $2)
		   AND (p.created_at, p.id) < ($3, $4)
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT $5`,
		houseID, status, pgconv.TimeToPgtype(lastCreatedAt), lastID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find payments keyset", err)
	}
	return collectPaymentListItems(rows)
}

func collectPaymentListItems(rows pgx.Rows) ([]*queries.PaymentListItem, error) {
	defer rows.Close()

	var result []*queries.PaymentListItem
	for rows.Next() {
		var item queries.PaymentListItem
		if err := rows.Scan(
			&item.ID, &item.OfferingID, &item.OfferingTitle, &item.UserID,
			&item.Kind, &item.AmountCents, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate payment rows", err)
	}
	return result, nil
}
