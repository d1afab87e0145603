package pure

func TableizeI1O1[I1 ComparableOrStringer, O1 any](
	pureFn func(I1) O1,
	opts ...Option,
) func(I1) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1))
		},
		opts,
	)
	return func(i1 I1) O1 {
		return tableized(i1)
	}
}

func TableizeI2O1[I1, I2 ComparableOrStringer, O1 any](
	pureFn func(I1, I2) O1,
	opts ...Option,
) func(I1, I2) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1), args[1].(I2))
		},
		opts,
	)
	return func(i1 I1, i2 I2) O1 {
		return tableized(i1, i2)
	}
}

func TableizeI3O1[I1, I2, I3 ComparableOrStringer, O1 any](
	pureFn func(I1, I2, I3) O1,
	opts ...Option,
) func(I1, I2, I3) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1), args[1].(I2), args[2].(I3))
		},
		opts,
	)
	return func(i1 I1, i2 I2, i3 I3) O1 {
		return tableized(i1, i2, i3)
	}
}

func TableizeI4O1[I1, I2, I3, I4 ComparableOrStringer, O1 any](
	pureFn func(I1, I2, I3, I4) O1,
	opts ...Option,
) func(I1, I2, I3, I4) O1 {
	tableized := tableize(
		func(args ...ComparableOrStringer) O1 {
			return pureFn(args[0].(I1), args[1].(I2), args[2].(I3), args[3].(I4))
		},
		opts,
	)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) O1 {
		return tableized(i1, i2, i3, i4)
	}
}

// TableizeI1O1Err tables successful results only; errors reach the caller and the
// next call with the same argument runs pureFn again. Like the other wrappers it is
// safe for concurrent use.
func TableizeI1O1Err[I1 ComparableOrStringer, O1 any](
	pureFn func(I1) (O1, error),
	opts ...Option,
) func(I1) (O1, error) {
	memo := New(func(args Args) (O1, error) {
		return pureFn(args.Pos[0].(I1))
	}, NewSyncTrie[O1](), opts...)
	return func(i1 I1) (O1, error) {
		return memo.Call(A(i1))
	}
}

func TableizeI2O1Err[I1, I2 ComparableOrStringer, O1 any](
	pureFn func(I1, I2) (O1, error),
	opts ...Option,
) func(I1, I2) (O1, error) {
	memo := New(func(args Args) (O1, error) {
		return pureFn(args.Pos[0].(I1), args.Pos[1].(I2))
	}, NewSyncTrie[O1](), opts...)
	return func(i1 I1, i2 I2) (O1, error) {
		return memo.Call(A(i1, i2))
	}
}

// tableize panics when an argument can't be part of a key. Its table is a SyncTrie,
// so the returned function may be called from many goroutines.
func tableize[O any](
	pureFn func(...ComparableOrStringer) O,
	opts []Option,
) func(...ComparableOrStringer) O {
	memo := New(func(args Args) (O, error) {
		return pureFn(args.Pos...), nil
	}, NewSyncTrie[O](), opts...)
	return func(args ...ComparableOrStringer) O {
		v, err := memo.Call(A(args...))
		if err != nil {
			panic(err)
		}
		return v
	}
}
