package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/econsim/banking"
)

func newTestCorp(t *testing.T) *Corporation {
	t.Helper()
	c, err := NewCorporation("test-corp", banking.NewBank(banking.NewCentralBank()))
	require.NoError(t, err)
	return c
}

func TestReviewPriceDemandExceedsSales(t *testing.T) {
	c := newTestCorp(t)
	c.SetTick(3)
	c.SetPrice(100)
	c.Stats().Sales.Record(2, 125)
	c.Stats().Demand.Record(2, 150)

	require.NoError(t, c.ReviewPrice())
	// (150-125)/125 = 0.2 -> price moves from 100 to 120.
	assert.InDelta(t, 120.0, c.Price(), 1e-9)
}

func TestReviewPriceSalesExceedDemand(t *testing.T) {
	c := newTestCorp(t)
	c.SetTick(3)
	c.SetPrice(100)
	c.Stats().Sales.Record(2, 125)
	c.Stats().Demand.Record(2, 100)

	require.NoError(t, c.ReviewPrice())
	assert.InDelta(t, 80.0, c.Price(), 1e-9)
}

func TestReviewPriceBalancedHolds(t *testing.T) {
	c := newTestCorp(t)
	c.SetTick(3)
	c.SetPrice(100)
	c.Stats().Sales.Record(2, 125)
	c.Stats().Demand.Record(2, 125)

	require.NoError(t, c.ReviewPrice())
	assert.InDelta(t, 100.0, c.Price(), 1e-9)
}

func TestReviewPriceZeroSalesHolds(t *testing.T) {
	c := newTestCorp(t)
	c.SetTick(3)
	c.SetPrice(100)
	c.Stats().Sales.Record(2, 0)
	c.Stats().Demand.Record(2, 50)

	require.NoError(t, c.ReviewPrice())
	assert.InDelta(t, 100.0, c.Price(), 1e-9)
}

func TestReviewPriceBeforeFirstTick(t *testing.T) {
	c := newTestCorp(t)
	assert.Error(t, c.ReviewPrice())
}

func TestReviewSalary(t *testing.T) {
	// Changes [200-100, 150-200] = [100, -50], mean 25.
	c := newTestCorp(t)
	c.SetTick(3)
	c.SetSalary(100)
	c.Stats().Sales.Record(0, 100)
	c.Stats().Sales.Record(1, 200)
	c.Stats().Sales.Record(2, 150)

	c.ReviewSalary()
	assert.InDelta(t, 125.0, c.Salary(), 1e-9)
}

func TestReviewSalaryFlatChanges(t *testing.T) {
	// Changes [100, -50, -50], mean 0.
	c := newTestCorp(t)
	c.SetTick(4)
	c.SetSalary(100)
	c.Stats().Sales.Record(0, 100)
	c.Stats().Sales.Record(1, 200)
	c.Stats().Sales.Record(2, 150)
	c.Stats().Sales.Record(3, 100)

	c.ReviewSalary()
	assert.InDelta(t, 100.0, c.Salary(), 1e-9)
}

func TestReviewSalaryDecreasing(t *testing.T) {
	c := newTestCorp(t)
	c.SetTick(3)
	c.SetSalary(100)
	c.Stats().Sales.Record(0, 200)
	c.Stats().Sales.Record(1, 150)
	c.Stats().Sales.Record(2, 100)

	c.ReviewSalary()
	assert.InDelta(t, 50.0, c.Salary(), 1e-9)
}

func TestReviewSalaryNeedsTwoValues(t *testing.T) {
	c := newTestCorp(t)
	c.SetTick(1)
	c.SetSalary(100)
	c.Stats().Sales.Record(0, 100)

	c.ReviewSalary()
	assert.InDelta(t, 100.0, c.Salary(), 1e-9)
}

func TestProduceGoodsBoundedByCapacityAndDemand(t *testing.T) {
	c := newTestCorp(t)
	c.PPE = 3
	c.SetPrice(10)
	c.SetTick(0)
	c.RegisterDemand(100)

	for i := 0; i < 10; i++ {
		p, err := NewPerson(banking.NewBank(banking.NewCentralBank()))
		require.NoError(t, err)
		c.AddEmployee(p)
	}

	c.SetTick(1)
	c.InitTickStats()
	c.ProduceGoods()

	// Capacity 10 * 3 = 30 caps the demand of 100.
	assert.Equal(t, 30, c.Inventory())
	prod, _ := c.Stats().Production.Value(1)
	assert.Equal(t, 30.0, prod)
}

func TestPaySalariesRecordsCosts(t *testing.T) {
	central := banking.NewCentralBank()
	bank := banking.NewBank(central)

	c, err := NewCorporation("payer", bank)
	require.NoError(t, err)
	c.SetSalary(50)
	_, err = c.Handle().Deposit(99999)
	require.NoError(t, err)

	people := make([]*Person, 0, 10)
	for i := 0; i < 10; i++ {
		p, err := NewPerson(bank)
		require.NoError(t, err)
		c.AddEmployee(p)
		people = append(people, p)
	}

	require.NoError(t, c.PaySalaries())

	for _, p := range people {
		balance, err := p.Handle().Balance()
		require.NoError(t, err)
		assert.Equal(t, 50.0, balance)
		assert.NotEmpty(t, p.LatestSalaryID)
	}

	costs, _ := c.Stats().Costs.Value(0)
	assert.Equal(t, 500.0, costs)
}

func TestPaySalariesStopsWhenFundsRunOut(t *testing.T) {
	bank := banking.NewBank(banking.NewCentralBank())
	c, err := NewCorporation("broke", bank)
	require.NoError(t, err)
	c.SetSalary(50)
	_, err = c.Handle().Deposit(120)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		p, err := NewPerson(bank)
		require.NoError(t, err)
		c.AddEmployee(p)
	}

	require.NoError(t, c.PaySalaries())

	// Only two full salaries fit into 120.
	costs, _ := c.Stats().Costs.Value(0)
	assert.Equal(t, 100.0, costs)
}

func TestSellGood(t *testing.T) {
	central := banking.NewCentralBank()
	sellerBank := banking.NewBank(central)
	buyerBank := banking.NewBank(central)

	c, err := NewCorporation("seller", sellerBank)
	require.NoError(t, err)
	c.SetPrice(10)
	c.PPE = 1

	buyer, err := NewPerson(buyerBank)
	require.NoError(t, err)
	_, err = buyer.Handle().Deposit(100)
	require.NoError(t, err)

	// Stock some inventory via production.
	c.RegisterDemand(3)
	emp, err := NewPerson(sellerBank)
	require.NoError(t, err)
	c.AddEmployee(emp)
	c.AddEmployee(mustPerson(t, sellerBank))
	c.AddEmployee(mustPerson(t, sellerBank))
	c.SetTick(1)
	c.InitTickStats()
	c.ProduceGoods()
	require.Equal(t, 3, c.Inventory())

	good, err := c.SellGood(buyer.Handle())
	require.NoError(t, err)
	require.NotNil(t, good)
	assert.Equal(t, 10.0, good.Price)
	assert.Equal(t, 2, c.Inventory())

	sales, _ := c.Stats().Sales.Value(1)
	revenue, _ := c.Stats().Revenue.Value(1)
	assert.Equal(t, 1.0, sales)
	assert.Equal(t, 10.0, revenue)

	balance, err := c.Handle().Balance()
	require.NoError(t, err)
	assert.Equal(t, 10.0, balance)
}

func TestSellGoodEmptyInventory(t *testing.T) {
	c := newTestCorp(t)
	buyer := mustPerson(t, c.Handle().Bank())

	good, err := c.SellGood(buyer.Handle())
	require.NoError(t, err)
	assert.Nil(t, good)
}

func TestReviewHiring(t *testing.T) {
	c := newTestCorp(t)
	c.PPE = 5
	c.SetTick(0)
	c.RegisterDemand(8)
	c.SetTick(1)

	c.ReviewHiring()
	assert.True(t, c.Hiring)

	c.AddEmployee(mustPerson(t, c.Handle().Bank()))
	c.AddEmployee(mustPerson(t, c.Handle().Bank()))
	c.ReviewHiring()
	assert.False(t, c.Hiring)
}

func TestReviewHiringSeedDemandStaffsToCapacity(t *testing.T) {
	// Before any tick completes, the gate reads the newest recorded
	// demand, so seed demand keeps the corporation hiring until
	// capacity covers it.
	c := newTestCorp(t)
	c.PPE = 5
	c.RegisterDemand(15)

	c.AddEmployee(mustPerson(t, c.Handle().Bank()))
	assert.True(t, c.Hiring)
	c.AddEmployee(mustPerson(t, c.Handle().Bank()))
	assert.True(t, c.Hiring)
	c.AddEmployee(mustPerson(t, c.Handle().Bank()))
	assert.False(t, c.Hiring)
	assert.Equal(t, 3, c.Employees())
}

func TestPaySalariesPaysInHiringOrder(t *testing.T) {
	bank := banking.NewBank(banking.NewCentralBank())
	c, err := NewCorporation("tight", bank)
	require.NoError(t, err)
	c.SetSalary(50)
	_, err = c.Handle().Deposit(50)
	require.NoError(t, err)

	first := mustPerson(t, bank)
	second := mustPerson(t, bank)
	third := mustPerson(t, bank)
	c.AddEmployee(first)
	c.AddEmployee(second)
	c.AddEmployee(third)

	// Funds cover exactly one salary; the earliest hire gets it every
	// run, never a different employee.
	require.NoError(t, c.PaySalaries())

	balance, err := first.Handle().Balance()
	require.NoError(t, err)
	assert.Equal(t, 50.0, balance)

	for _, p := range []*Person{second, third} {
		balance, err := p.Handle().Balance()
		require.NoError(t, err)
		assert.Equal(t, 0.0, balance)
	}
}

func TestFireForSavingsReleasesNewestHiresFirst(t *testing.T) {
	c := newTestCorp(t)
	c.SetSalary(50)

	first := mustPerson(t, c.Handle().Bank())
	second := mustPerson(t, c.Handle().Bank())
	third := mustPerson(t, c.Handle().Bank())
	c.AddEmployee(first)
	c.AddEmployee(second)
	c.AddEmployee(third)

	// Shortfall 200 over a window of 4 at salary 50 fires one person.
	c.fireForSavings(200)

	assert.Equal(t, 2, c.Employees())
	assert.True(t, first.Employed)
	assert.True(t, second.Employed)
	assert.False(t, third.Employed)
}

func TestInitTickStatsCarriesPriceAndSalary(t *testing.T) {
	c := newTestCorp(t)
	c.SetTick(0)
	c.SetPrice(10)
	c.SetSalary(50)

	c.SetTick(1)
	c.InitTickStats()

	price, ok := c.Stats().Price.Value(1)
	require.True(t, ok)
	assert.Equal(t, 10.0, price)

	salary, ok := c.Stats().Salary.Value(1)
	require.True(t, ok)
	assert.Equal(t, 50.0, salary)

	sales, ok := c.Stats().Sales.Value(1)
	require.True(t, ok)
	assert.Equal(t, 0.0, sales)
}

func mustPerson(t *testing.T, bank *banking.Bank) *Person {
	t.Helper()
	p, err := NewPerson(bank)
	require.NoError(t, err)
	return p
}
