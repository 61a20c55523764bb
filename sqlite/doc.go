// Package sqlite is a typed embedding layer over the SQLite engine.
//
// A Connection owns one database session. Prepare compiles SQL into a
// Statement whose positional parameters are bound from ordinary Go values
// and whose result rows are delivered to a handler with already converted
// arguments:
//
//	db, err := sqlite.Open("data.db")
//	if err != nil {
//		// handle err
//	}
//	defer db.Close()
//
//	ins, err := db.Prepare("insert into test (name, data) values (?, ?)")
//	if err != nil {
//		// handle err
//	}
//	defer ins.Close()
//	for i := int64(0); i < 10; i++ {
//		if err := ins.Bind(i, math.Sqrt(float64(i))).Exec(); err != nil {
//			// handle err
//		}
//	}
//
//	sel, err := db.Prepare("select name, data from test where data < ?")
//	...
//	err = sqlite.ForEach2(sel.Bind(2.0), func(name int, data float64) {
//		fmt.Println(name, data)
//	})
//
// The handler's parameter types choose the conversion for each column once
// per call, following the coercion table documented on Column.
//
// Failures are reported with the typed errors in errors.go. A Statement that
// failed keeps the error and refuses further work until Reset is called.
//
//go:generate go run ../cmd/genforeach -config foreach.yml -output foreach_gen.go
package sqlite
