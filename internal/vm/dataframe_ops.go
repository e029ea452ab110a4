package vm

import (
	"github.com/raoul-lang/raoul/internal/dataframe"
	"github.com/raoul-lang/raoul/internal/ir"
)

// execReadCSV loads the single process-wide dataframe (spec invariant I5).
// The analyzer has already guaranteed this runs at most once.
func (vm *VM) execReadCSV(q ir.Quadruple) error {
	path := vm.readString(q.Arg1)
	df, err := dataframe.Load(path)
	if err != nil {
		return vm.fail(RuntimeType, "failed to load dataframe from %q: %v", path, err)
	}
	vm.df = df
	return nil
}

// execDataframeOp dispatches the value-producing dataframe operations.
// get_rows/get_columns take no column arguments; correlation takes two;
// every other op takes one.
func (vm *VM) execDataframeOp(q ir.Quadruple) error {
	switch q.Op {
	case ir.GET_ROWS:
		n, err := vm.df.RowCount()
		if err != nil {
			return vm.fail(RuntimeType, "%v", err)
		}
		vm.writeInt(q.Res, int64(n))
		return nil
	case ir.GET_COLUMNS:
		vm.writeInt(q.Res, int64(vm.df.ColumnCount()))
		return nil
	case ir.CORREL:
		a, b := vm.readString(q.Arg1), vm.readString(q.Arg2)
		v, err := vm.df.Correlation(a, b)
		if err != nil {
			return vm.fail(UnknownColumn, "%v", err)
		}
		vm.writeFloat(q.Res, v)
		return nil
	}

	col := vm.readString(q.Arg1)
	var v float64
	var err error
	switch q.Op {
	case ir.AVERAGE:
		v, err = vm.df.Average(col)
	case ir.STD:
		v, err = vm.df.Std(col)
	case ir.MEDIAN:
		v, err = vm.df.Median(col)
	case ir.VARIANCE:
		v, err = vm.df.Variance(col)
	case ir.MIN:
		v, err = vm.df.Min(col)
	case ir.MAX:
		v, err = vm.df.Max(col)
	case ir.RANGE:
		v, err = vm.df.Range(col)
	}
	if err != nil {
		return vm.fail(UnknownColumn, "%v", err)
	}
	vm.writeFloat(q.Res, v)
	return nil
}

func (vm *VM) execPlot(q ir.Quadruple) error {
	xs, err := vm.df.Column(vm.readString(q.Arg1))
	if err != nil {
		return vm.fail(UnknownColumn, "%v", err)
	}
	ys, err := vm.df.Column(vm.readString(q.Arg2))
	if err != nil {
		return vm.fail(UnknownColumn, "%v", err)
	}
	if err := vm.sink.Plot(xs, ys); err != nil {
		return vm.fail(RuntimeType, "plot failed: %v", err)
	}
	return nil
}

func (vm *VM) execHist(q ir.Quadruple) error {
	vals, err := vm.df.Column(vm.readString(q.Arg1))
	if err != nil {
		return vm.fail(UnknownColumn, "%v", err)
	}
	bins := int(vm.readInt(q.Arg2))
	if err := vm.sink.Histogram(vals, bins); err != nil {
		return vm.fail(RuntimeType, "histogram failed: %v", err)
	}
	return nil
}

// Close releases the dataframe's backing store, if one was ever loaded.
func (vm *VM) Close() error {
	if vm.df == nil {
		return nil
	}
	return vm.df.Close()
}
