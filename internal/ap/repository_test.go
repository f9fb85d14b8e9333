package ap

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAgingRowsQueryCapsExpenseDate(t *testing.T) {
	asOf := day(2022, time.August, 31)
	filter := AgingFilter{CompanyID: testCompanyID, AgingDate: asOf}

	query, args := agingRowsQuery(filter)

	require.Contains(t, query, "i.expense_date <= $4")
	require.Len(t, args, 4)
	require.Equal(t, asOf, args[3])
}

func TestAgingRowsQueryVendorFilter(t *testing.T) {
	asOf := day(2022, time.August, 31)
	vendorIDs := []uuid.UUID{testVendorID}
	filter := AgingFilter{CompanyID: testCompanyID, AgingDate: asOf, VendorIDs: vendorIDs}

	query, args := agingRowsQuery(filter)

	require.Contains(t, query, "i.vendor_id = ANY($5)")
	require.Len(t, args, 5)
	require.Equal(t, vendorIDs, args[4])
}
