package ecs

import "reflect"

// typeOf 返回类型参数 T 的 reflect.Type
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent 泛型版本的组件获取
//
// 用法:
//
//	health, ok := ecs.GetComponent[*components.HealthComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 泛型版本的组件检查
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent 泛型版本的组件移除
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有一个组件的实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有两个组件的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有三个组件的实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}

// FindInSelfOrAncestors 在实体自身及其祖先链上查找组件
// 返回找到组件的实体ID和组件本身
//
// 祖先链长度有上限，防止错误配置出现环时死循环
func FindInSelfOrAncestors[T any](em *EntityManager, id EntityID) (EntityID, T, bool) {
	const maxDepth = 32
	current := id
	for depth := 0; depth < maxDepth; depth++ {
		if comp, ok := GetComponent[T](em, current); ok {
			return current, comp, true
		}
		parent, ok := em.Parent(current)
		if !ok {
			break
		}
		current = parent
	}
	var zero T
	return InvalidEntity, zero, false
}

// RootOf 返回实体所在层级的根实体
func RootOf(em *EntityManager, id EntityID) EntityID {
	const maxDepth = 32
	current := id
	for depth := 0; depth < maxDepth; depth++ {
		parent, ok := em.Parent(current)
		if !ok {
			return current
		}
		current = parent
	}
	return current
}
