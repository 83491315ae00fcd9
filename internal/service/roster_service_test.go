package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickpoint/internal/domain"
	"pickpoint/internal/repository"
)

func TestAddIntern(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	in, err := f.roster.AddIntern(ctx, " Anna ", "Smirnova")
	require.NoError(t, err)
	assert.NotEmpty(t, in.ID)
	assert.Equal(t, "Anna", in.Name)
	assert.True(t, in.Salary.IsZero())
	assert.True(t, in.TotalEarned.IsZero())
	assert.Zero(t, in.IssuedOrders)
	assert.Empty(t, in.Warns)
	assert.Equal(t, domain.EfficiencyNew, in.Efficiency().Level)

	_, err = f.roster.AddIntern(ctx, "", "Smirnova")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.roster.AddIntern(ctx, "Anna", "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	list, err := f.roster.ListInterns(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRemoveIntern(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	in, _ := f.roster.AddIntern(ctx, "Anna", "Smirnova")

	require.NoError(t, f.roster.RemoveIntern(ctx, in.ID))
	_, err := f.roster.GetIntern(ctx, in.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, f.roster.RemoveIntern(ctx, in.ID), repository.ErrNotFound)
}

func TestWarnings_RemoveKeepsOrder(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	in, _ := f.roster.AddIntern(ctx, "Anna", "Smirnova")

	var ids []string
	for _, reason := range []string{"late", "rude", "lost parcel", "late again"} {
		w, err := f.roster.AddWarning(ctx, in.ID, reason)
		require.NoError(t, err)
		assert.True(t, w.IssuedBy.IsCurator())
		ids = append(ids, w.ID)
	}

	require.NoError(t, f.roster.RemoveWarning(ctx, in.ID, ids[1]))

	got, _ := f.roster.GetIntern(ctx, in.ID)
	require.Len(t, got.Warns, 3)
	assert.Equal(t, []string{ids[0], ids[2], ids[3]},
		[]string{got.Warns[0].ID, got.Warns[1].ID, got.Warns[2].ID})
	assert.Equal(t, "lost parcel", got.Warns[1].Reason)

	assert.ErrorIs(t, f.roster.RemoveWarning(ctx, in.ID, ids[1]), repository.ErrNotFound)
	_, err := f.roster.AddWarning(ctx, in.ID, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.roster.AddWarning(ctx, "ghost", "late")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInternWithdraw(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	in, _ := f.roster.AddIntern(ctx, "Anna", "Smirnova")
	o, _ := f.orders.CreateOrder(ctx, "C", "", []domain.OrderItem{item("A", 1, "500")})
	_, err := f.orders.Issue(ctx, o.ID, domain.InternActor(in.ID))
	require.NoError(t, err)

	amount, err := f.roster.Withdraw(ctx, in.ID)
	require.NoError(t, err)
	assert.True(t, amount.Equal(dec("50")))

	got, _ := f.roster.GetIntern(ctx, in.ID)
	assert.True(t, got.Salary.IsZero())
	assert.True(t, got.TotalEarned.Equal(dec("50")))

	amount, err = f.roster.Withdraw(ctx, in.ID)
	require.NoError(t, err)
	assert.True(t, amount.IsZero())
}

func TestEfficiency_FollowsHistory(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	in, _ := f.roster.AddIntern(ctx, "Anna", "Smirnova")

	var orders []string
	for n := 0; n < 10; n++ {
		o, _ := f.orders.CreateOrder(ctx, "C", "", []domain.OrderItem{item("A", 1, "10")})
		_, err := f.orders.Issue(ctx, o.ID, domain.InternActor(in.ID))
		require.NoError(t, err)
		orders = append(orders, o.ID)
	}
	eff, err := f.roster.Efficiency(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Efficiency{Level: domain.EfficiencyExcellent, Score: 100}, eff)

	for _, id := range orders[:5] {
		_, err := f.orders.MarkReturned(ctx, id, "defect", nil)
		require.NoError(t, err)
	}
	eff, err = f.roster.Efficiency(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Efficiency{Level: domain.EfficiencyWeak, Score: 50}, eff)
}

func TestCuratorWithdraw(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	o, _ := f.orders.CreateOrder(ctx, "C", "", []domain.OrderItem{item("A", 2, "100"), item("B", 1, "50")})
	_, _ = f.orders.Issue(ctx, o.ID, domain.Curator())

	amount, err := f.ledger.Withdraw(ctx)
	require.NoError(t, err)
	assert.True(t, amount.Equal(dec("62.5")))
	assert.True(t, balance(t, f).IsZero())
}
