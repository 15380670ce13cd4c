package server

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"litecoin-rpc/param"
)

// Handler answers one JSON-RPC method. Returning a *message.Fault sends that
// fault to the caller unchanged; any other error becomes a generic fault.
type Handler func(ctx context.Context, params []param.Param) (any, error)

type methodType struct {
	method reflect.Method
}

type service struct {
	name   string
	rcvr   reflect.Value
	typ    reflect.Type
	method map[string]*methodType // wire name → method
}

// NewService wraps rcvr and collects its RPC methods.
func NewService(rcvr any) (*service, error) {
	typ := reflect.TypeOf(rcvr)
	if typ == nil || typ.Kind() != reflect.Ptr {
		return nil, fmt.Errorf("rpc: rcvr must be a pointer, got %T", rcvr)
	}
	if typ.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("rpc: rcvr must point to a struct, got %s", typ.Elem().Kind())
	}
	srv := &service{
		name:   typ.Elem().Name(),
		rcvr:   reflect.ValueOf(rcvr),
		typ:    typ,
		method: make(map[string]*methodType),
	}
	srv.RegisterMethods()
	if len(srv.method) == 0 {
		return nil, fmt.Errorf("rpc: %s has no method of the form func(context.Context, []param.Param) (any, error)", srv.name)
	}
	return srv, nil
}

var (
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	paramsType  = reflect.TypeOf([]param.Param(nil))
	anyType     = reflect.TypeOf((*any)(nil)).Elem()
)

// RegisterMethods keeps the exported methods with the RPC signature.
// A method GetBalance(ctx, params) (any, error) is exposed as "getbalance",
// the way daemons name their commands.
func (s *service) RegisterMethods() {
	for i := 0; i < s.typ.NumMethod(); i++ {
		method := s.typ.Method(i)
		mt := method.Type
		if mt.NumIn() != 3 || mt.NumOut() != 2 ||
			mt.In(1) != contextType || mt.In(2) != paramsType ||
			mt.Out(0) != anyType || mt.Out(1) != errorType {
			continue
		}
		s.method[strings.ToLower(method.Name)] = &methodType{method: method}
	}
}

// handler binds a method to the receiver.
func (s *service) handler(mType *methodType) Handler {
	return func(ctx context.Context, params []param.Param) (any, error) {
		args := [3]reflect.Value{s.rcvr, reflect.ValueOf(ctx), reflect.ValueOf(params)}
		results := mType.method.Func.Call(args[:])
		var err error
		if !results[1].IsNil() {
			err = results[1].Interface().(error)
		}
		return results[0].Interface(), err
	}
}
